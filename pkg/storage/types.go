package storage

import "database/sql"

// MatchRecord is one persisted fixture/result row. Optional numerics are
// nullable because API-Football only reports goals once a match kicks off
// and xG/cards only for competitions with stats coverage.
type MatchRecord struct {
	ID          int64           `json:"id"`
	DateUTC     string          `json:"date_utc"`
	LeagueID    int64           `json:"league_id"`
	LeagueName  string          `json:"league_name"`
	HomeTeam    string          `json:"home_team"`
	AwayTeam    string          `json:"away_team"`
	HomeGoals   sql.NullInt64   `json:"home_goals"`
	AwayGoals   sql.NullInt64   `json:"away_goals"`
	Status      string          `json:"status"`
	XGHome      sql.NullFloat64 `json:"xg_home"`
	XGAway      sql.NullFloat64 `json:"xg_away"`
	CardsHome   sql.NullInt64   `json:"cards_home"`
	CardsAway   sql.NullInt64   `json:"cards_away"`
	Upset       int64           `json:"upset"`
	LateDrama   int64           `json:"late_drama"`
	LeadChanges sql.NullInt64   `json:"lead_changes"`
}

// MatchStats carries the enrichment columns filled in after full time.
type MatchStats struct {
	XGHome      sql.NullFloat64
	XGAway      sql.NullFloat64
	CardsHome   sql.NullInt64
	CardsAway   sql.NullInt64
	LateDrama   int64
	LeadChanges sql.NullInt64
}

// DigestRun is one row of the digests audit log.
type DigestRun struct {
	ID           int64  `json:"id"`
	RunDateLocal string `json:"run_date_local"`
	MOTDMatchID  int64  `json:"motd_match_id"`
	EmailSent    bool   `json:"email_sent"`
}

// TableStats summarizes the matches table for `footdigest db stats`.
type TableStats struct {
	Matches  int `json:"matches"`
	Finished int `json:"finished"`
	Upcoming int `json:"upcoming"`
	Leagues  int `json:"leagues"`
	Digests  int `json:"digests"`
}
