package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.sqlite"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func fixture(id int64, date, status string, hg, ag int64, leagueID int64) MatchRecord {
	return MatchRecord{
		ID:         id,
		DateUTC:    date,
		LeagueID:   leagueID,
		LeagueName: "League",
		HomeTeam:   "Home",
		AwayTeam:   "Away",
		HomeGoals:  sql.NullInt64{Int64: hg, Valid: true},
		AwayGoals:  sql.NullInt64{Int64: ag, Valid: true},
		Status:     status,
	}
}

func TestUpsertAndFinishedOn(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	saved, err := db.UpsertFixtures(ctx, []MatchRecord{
		fixture(1, "2025-01-09T18:00:00+00:00", "FT", 2, 1, 39),
		fixture(2, "2025-01-09T20:00:00+00:00", "FT", 0, 0, 307),
		fixture(3, "2025-01-10T18:00:00+00:00", "FT", 3, 3, 39),
		fixture(4, "2025-01-09T16:00:00+00:00", "NS", 0, 0, 39),
	})
	if err != nil {
		t.Fatal(err)
	}
	if saved != 4 {
		t.Errorf("saved %d rows, want 4", saved)
	}

	got, err := db.FinishedOn(ctx, "2025-01-09", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("FinishedOn returned %d rows, want 2", len(got))
	}

	got, err = db.FinishedOn(ctx, "2025-01-09", []int64{307})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("league filter returned %v", got)
	}
}

func TestUpsertRefetchPreservesStats(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	m := fixture(7, "2025-01-09T18:00:00+00:00", "FT", 1, 0, 39)
	if _, err := db.UpsertFixtures(ctx, []MatchRecord{m}); err != nil {
		t.Fatal(err)
	}
	stats := MatchStats{
		XGHome:      sql.NullFloat64{Float64: 1.4, Valid: true},
		XGAway:      sql.NullFloat64{Float64: 0.6, Valid: true},
		CardsHome:   sql.NullInt64{Int64: 2, Valid: true},
		CardsAway:   sql.NullInt64{Int64: 1, Valid: true},
		LateDrama:   1,
		LeadChanges: sql.NullInt64{Int64: 0, Valid: true},
	}
	if err := db.ApplyStats(ctx, 7, stats); err != nil {
		t.Fatal(err)
	}

	// Refetch with a corrected scoreline. Enrichment must survive.
	m.AwayGoals = sql.NullInt64{Int64: 1, Valid: true}
	if _, err := db.UpsertFixtures(ctx, []MatchRecord{m}); err != nil {
		t.Fatal(err)
	}

	got, err := db.FinishedOn(ctx, "2025-01-09", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d rows, want 1", len(got))
	}
	r := got[0]
	if r.AwayGoals.Int64 != 1 {
		t.Errorf("away goals not updated: %v", r.AwayGoals)
	}
	if !r.XGHome.Valid || r.XGHome.Float64 != 1.4 || r.LateDrama != 1 {
		t.Errorf("stats wiped by refetch: %+v", r)
	}
}

func TestScheduledOnOrdering(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	if _, err := db.UpsertFixtures(ctx, []MatchRecord{
		fixture(1, "2025-01-09T20:00:00+00:00", "NS", 0, 0, 39),
		fixture(2, "2025-01-09T15:00:00+00:00", "TBD", 0, 0, 39),
		fixture(3, "2025-01-09T18:00:00+00:00", "FT", 1, 0, 39),
	}); err != nil {
		t.Fatal(err)
	}

	got, err := db.ScheduledOn(ctx, "2025-01-09")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 1 {
		t.Errorf("ScheduledOn order wrong: %v", got)
	}
}

func TestPendingStats(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	if _, err := db.UpsertFixtures(ctx, []MatchRecord{
		fixture(1, "2025-01-09T18:00:00+00:00", "FT", 2, 1, 39),
		fixture(2, "2025-01-09T20:00:00+00:00", "FT", 0, 0, 39),
		fixture(3, "2025-01-09T16:00:00+00:00", "NS", 0, 0, 39),
	}); err != nil {
		t.Fatal(err)
	}
	if err := db.ApplyStats(ctx, 1, MatchStats{
		XGHome:      sql.NullFloat64{Float64: 2.0, Valid: true},
		LeadChanges: sql.NullInt64{Int64: 1, Valid: true},
	}); err != nil {
		t.Fatal(err)
	}

	ids, err := db.PendingStats(ctx, "2025-01-09")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 || ids[0] != 2 {
		t.Errorf("PendingStats = %v, want [2]", ids)
	}
}

func TestRecordDigestAndStats(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	if _, err := db.UpsertFixtures(ctx, []MatchRecord{
		fixture(1, "2025-01-09T18:00:00+00:00", "FT", 2, 1, 39),
		fixture(2, "2025-01-10T18:00:00+00:00", "NS", 0, 0, 307),
	}); err != nil {
		t.Fatal(err)
	}
	if err := db.RecordDigest(ctx, "2025-01-10", 1, true); err != nil {
		t.Fatal(err)
	}
	if err := db.RecordDigest(ctx, "2025-01-11", 0, false); err != nil {
		t.Fatal(err)
	}

	s, err := db.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if s.Matches != 2 || s.Finished != 1 || s.Upcoming != 1 || s.Leagues != 2 || s.Digests != 2 {
		t.Errorf("Stats() = %+v", s)
	}
}
