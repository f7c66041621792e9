package storage

import (
	"context"
	"database/sql"
	"strings"

	_ "modernc.org/sqlite"
)

type DB struct {
	sql *sql.DB
}

func Open(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	// Ensure schema exists for convenience.
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS matches (
  id           INTEGER PRIMARY KEY,
  date_utc     TEXT,
  league_id    INTEGER,
  league_name  TEXT,
  home_team    TEXT,
  away_team    TEXT,
  home_goals   INTEGER,
  away_goals   INTEGER,
  status       TEXT,
  xg_home      REAL,
  xg_away      REAL,
  cards_home   INTEGER,
  cards_away   INTEGER,
  upset        INTEGER NOT NULL DEFAULT 0,
  late_drama   INTEGER NOT NULL DEFAULT 0,
  lead_changes INTEGER
);
CREATE INDEX IF NOT EXISTS idx_matches_date ON matches(date(date_utc));
CREATE INDEX IF NOT EXISTS idx_matches_status ON matches(status);
CREATE INDEX IF NOT EXISTS idx_matches_league ON matches(league_id);
CREATE TABLE IF NOT EXISTS digests (
  id             INTEGER PRIMARY KEY AUTOINCREMENT,
  run_date_local TEXT NOT NULL,
  motd_match_id  INTEGER,
  email_sent     INTEGER NOT NULL DEFAULT 0
);
    `); err != nil {
		return nil, err
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// UpsertFixtures inserts or replaces fixture rows keyed by the stable
// API-Football fixture id. Stats columns are preserved on replace via
// the upsert clause so a plain refetch doesn't wipe enrichment data.
func (d *DB) UpsertFixtures(ctx context.Context, rows []MatchRecord) (int, error) {
	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	saved := 0
	for _, m := range rows {
		_, err = tx.ExecContext(ctx, `
INSERT INTO matches (id, date_utc, league_id, league_name, home_team, away_team, home_goals, away_goals, status)
VALUES (?,?,?,?,?,?,?,?,?)
ON CONFLICT(id) DO UPDATE SET
  date_utc=excluded.date_utc,
  league_id=excluded.league_id,
  league_name=excluded.league_name,
  home_team=excluded.home_team,
  away_team=excluded.away_team,
  home_goals=excluded.home_goals,
  away_goals=excluded.away_goals,
  status=excluded.status`,
			m.ID, m.DateUTC, m.LeagueID, m.LeagueName,
			m.HomeTeam, m.AwayTeam, m.HomeGoals, m.AwayGoals, m.Status)
		if err != nil {
			return 0, err
		}
		saved++
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return saved, nil
}

// ApplyStats fills the enrichment columns for one finished match.
func (d *DB) ApplyStats(ctx context.Context, matchID int64, s MatchStats) error {
	_, err := d.sql.ExecContext(ctx, `
UPDATE matches SET xg_home=?, xg_away=?, cards_home=?, cards_away=?, late_drama=?, lead_changes=?
WHERE id=?`,
		s.XGHome, s.XGAway, s.CardsHome, s.CardsAway, s.LateDrama, s.LeadChanges, matchID)
	return err
}

const matchColumns = `id, date_utc, league_id, league_name, home_team, away_team,
home_goals, away_goals, status, xg_home, xg_away, cards_home, cards_away,
upset, late_drama, lead_changes`

func scanMatches(rows *sql.Rows) ([]MatchRecord, error) {
	defer rows.Close()
	var out []MatchRecord
	for rows.Next() {
		var m MatchRecord
		if err := rows.Scan(
			&m.ID, &m.DateUTC, &m.LeagueID, &m.LeagueName, &m.HomeTeam, &m.AwayTeam,
			&m.HomeGoals, &m.AwayGoals, &m.Status, &m.XGHome, &m.XGAway,
			&m.CardsHome, &m.CardsAway, &m.Upset, &m.LateDrama, &m.LeadChanges,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// FinishedOn returns full-time matches whose UTC calendar date equals the
// given ISO date (YYYY-MM-DD), optionally restricted to the given league ids.
func (d *DB) FinishedOn(ctx context.Context, date string, leagueIDs []int64) ([]MatchRecord, error) {
	query := "SELECT " + matchColumns + " FROM matches WHERE status='FT' AND date(date_utc)=?"
	args := []any{date}
	if len(leagueIDs) > 0 {
		query += " AND league_id IN (?" + strings.Repeat(",?", len(leagueIDs)-1) + ")"
		for _, id := range leagueIDs {
			args = append(args, id)
		}
	}
	rows, err := d.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanMatches(rows)
}

// ScheduledOn returns not-yet-started fixtures for the given ISO date,
// ordered by kickoff time.
func (d *DB) ScheduledOn(ctx context.Context, date string) ([]MatchRecord, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+matchColumns+" FROM matches WHERE status IN ('NS','TBD') AND date(date_utc)=? ORDER BY datetime(date_utc) ASC",
		date)
	if err != nil {
		return nil, err
	}
	return scanMatches(rows)
}

// MatchesOn returns every stored match for the given ISO date regardless of
// status, ordered by kickoff time. Used by the JSON API.
func (d *DB) MatchesOn(ctx context.Context, date string) ([]MatchRecord, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+matchColumns+" FROM matches WHERE date(date_utc)=? ORDER BY datetime(date_utc) ASC",
		date)
	if err != nil {
		return nil, err
	}
	return scanMatches(rows)
}

// PendingStats lists finished matches on a date that have no enrichment yet.
func (d *DB) PendingStats(ctx context.Context, date string) ([]int64, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id FROM matches WHERE status='FT' AND date(date_utc)=? AND xg_home IS NULL AND lead_changes IS NULL",
		date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// RecordDigest logs one digest run for auditing.
func (d *DB) RecordDigest(ctx context.Context, runDateLocal string, motdMatchID int64, emailSent bool) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO digests(run_date_local, motd_match_id, email_sent) VALUES (?,?,?)",
		runDateLocal, motdMatchID, boolToInt(emailSent))
	return err
}

// Stats returns aggregate counts for the db stats command.
func (d *DB) Stats(ctx context.Context) (TableStats, error) {
	var s TableStats
	row := d.sql.QueryRowContext(ctx, `
SELECT
  COUNT(*),
  COALESCE(SUM(CASE WHEN status='FT' THEN 1 ELSE 0 END), 0),
  COALESCE(SUM(CASE WHEN status IN ('NS','TBD') THEN 1 ELSE 0 END), 0),
  COUNT(DISTINCT league_id)
FROM matches`)
	if err := row.Scan(&s.Matches, &s.Finished, &s.Upcoming, &s.Leagues); err != nil {
		return s, err
	}
	if err := d.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM digests").Scan(&s.Digests); err != nil {
		return s, err
	}
	return s, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
