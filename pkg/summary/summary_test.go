package summary

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/mubarak-24/football-matches/pkg/storage"
)

func record(home, away string, hg, ag int64) storage.MatchRecord {
	return storage.MatchRecord{
		HomeTeam:   home,
		AwayTeam:   away,
		HomeGoals:  sql.NullInt64{Int64: hg, Valid: true},
		AwayGoals:  sql.NullInt64{Int64: ag, Valid: true},
		LeagueName: "Premier League",
	}
}

func TestEnglishPhrasing(t *testing.T) {
	tests := []struct {
		name string
		m    storage.MatchRecord
		want string
	}{
		{"draw", record("Arsenal", "Chelsea", 1, 1), "ended in a hard-fought draw"},
		{"one-goal home win", record("Arsenal", "Chelsea", 2, 1), "Arsenal edged past Chelsea by a single goal"},
		{"one-goal away win", record("Arsenal", "Chelsea", 0, 1), "Chelsea edged past Arsenal by a single goal"},
		{"two-goal margin", record("Arsenal", "Chelsea", 3, 1), "Arsenal showed control with a two-goal margin over Chelsea"},
		{"blowout", record("Arsenal", "Chelsea", 5, 0), "Arsenal dominated Chelsea with a big win"},
	}
	for _, tt := range tests {
		got := English(tt.m)
		if !strings.Contains(got, tt.want) {
			t.Errorf("%s: English() = %q, want it to contain %q", tt.name, got, tt.want)
		}
	}
}

func TestEnglishHeaderAndLeague(t *testing.T) {
	got := English(record("Arsenal", "Chelsea", 2, 1))
	if !strings.HasPrefix(got, "Match of the Day: Arsenal 2-1 Chelsea.") {
		t.Errorf("unexpected header: %q", got)
	}
	if !strings.Contains(got, "League: Premier League.") {
		t.Errorf("missing league line: %q", got)
	}
}

func TestArabicMirrorsMargins(t *testing.T) {
	tests := []struct {
		name string
		m    storage.MatchRecord
		want string
	}{
		{"draw", record("الهلال", "النصر", 2, 2), "انتهت بالتعادل بعد صراع قوي."},
		{"one-goal win", record("الهلال", "النصر", 1, 0), "بفارق هدف واحد فقط"},
		{"two-goal win", record("الهلال", "النصر", 3, 1), "بفارق هدفين"},
		{"blowout", record("الهلال", "النصر", 4, 0), "اكتسح"},
	}
	for _, tt := range tests {
		got := Arabic(tt.m)
		if !strings.Contains(got, tt.want) {
			t.Errorf("%s: Arabic() = %q, want it to contain %q", tt.name, got, tt.want)
		}
	}
	if !strings.Contains(Arabic(record("الهلال", "النصر", 2, 2)), "مباراة الأمس") {
		t.Error("Arabic recap missing its header")
	}
}

func TestMissingGoalsTreatedAsDraw(t *testing.T) {
	m := storage.MatchRecord{HomeTeam: "A", AwayTeam: "B", LeagueName: "L"}
	got := English(m)
	if !strings.Contains(got, "A 0-0 B") || !strings.Contains(got, "hard-fought draw") {
		t.Errorf("NULL goals should read as 0-0 draw, got %q", got)
	}
}
