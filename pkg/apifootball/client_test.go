package apifootball

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const fixturesBody = `{
  "response": [
    {
      "fixture": {"id": 1100, "date": "2025-01-09T18:00:00+00:00", "status": {"short": "FT"}},
      "league": {"id": 39, "name": "Premier League"},
      "teams": {"home": {"name": "Arsenal"}, "away": {"name": "Chelsea"}},
      "goals": {"home": 2, "away": 1}
    },
    {
      "fixture": {"id": 1101, "date": "2025-01-09T20:00:00+00:00", "status": {"short": "NS"}},
      "league": {"id": 307, "name": "Pro League"},
      "teams": {"home": {"name": "Al Hilal"}, "away": {"name": "Al Nassr"}},
      "goals": {"home": null, "away": null}
    },
    {
      "fixture": {"id": 0},
      "league": {"id": 1, "name": "junk"}
    }
  ]
}`

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient("test-key")
	c.SetBaseURL(srv.URL)
	return c
}

func TestFixturesByDate(t *testing.T) {
	var gotQuery string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-apisports-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		gotQuery = r.URL.RawQuery
		w.Write([]byte(fixturesBody))
	})

	rows, err := c.FixturesByDate(context.Background(), "2025-01-09", []int64{39, 307}, []int64{42})
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"date=2025-01-09", "league=39", "league=307", "team=42"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}

	// The zero-id row is skipped.
	if len(rows) != 2 {
		t.Fatalf("got %d fixtures, want 2", len(rows))
	}
	ft := rows[0]
	if ft.ID != 1100 || ft.LeagueName != "Premier League" || ft.Status != "FT" {
		t.Errorf("bad fixture: %+v", ft)
	}
	if !ft.HomeGoals.Valid || ft.HomeGoals.Int64 != 2 || ft.AwayGoals.Int64 != 1 {
		t.Errorf("bad scoreline: %+v", ft)
	}
	// Unplayed fixtures have null goals and must stay NULL.
	ns := rows[1]
	if ns.HomeGoals.Valid || ns.AwayGoals.Valid {
		t.Errorf("null goals parsed as valid: %+v", ns)
	}
}

func TestRateLimitError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(429)
		w.Write([]byte(`{"message": "daily quota reached"}`))
	})

	_, err := c.FixturesByDate(context.Background(), "2025-01-09", nil, nil)
	if err == nil {
		t.Fatal("expected error on 429")
	}
	if !strings.Contains(err.Error(), "daily quota reached") {
		t.Errorf("429 error lost the API message: %v", err)
	}
}

func TestMissingAPIKey(t *testing.T) {
	c := NewClient("")
	if _, err := c.FixturesByDate(context.Background(), "2025-01-09", nil, nil); err == nil {
		t.Fatal("expected error with empty api key")
	}
}

func TestFixtureGoals(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
  "response": [
    {"type": "Goal", "detail": "Normal Goal", "time": {"elapsed": 23, "extra": null}, "team": {"name": "Arsenal"}},
    {"type": "Card", "detail": "Yellow Card", "time": {"elapsed": 40}, "team": {"name": "Chelsea"}},
    {"type": "Goal", "detail": "Missed Penalty", "time": {"elapsed": 55}, "team": {"name": "Chelsea"}},
    {"type": "Goal", "detail": "Penalty", "time": {"elapsed": 90, "extra": 3}, "team": {"name": "Chelsea"}}
  ]
}`))
	})

	goals, err := c.FixtureGoals(context.Background(), 1100)
	if err != nil {
		t.Fatal(err)
	}
	if len(goals) != 2 {
		t.Fatalf("got %d goals, want 2 (cards and missed penalties skipped)", len(goals))
	}
	if goals[0].Minute != 23 || goals[0].TeamName != "Arsenal" {
		t.Errorf("bad first goal: %+v", goals[0])
	}
	if goals[1].Minute != 90 || goals[1].Extra != 3 {
		t.Errorf("bad stoppage-time goal: %+v", goals[1])
	}
}

func TestFixtureStatistics(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
  "response": [
    {
      "team": {"name": "Arsenal"},
      "statistics": [
        {"type": "expected_goals", "value": "1.82"},
        {"type": "Yellow Cards", "value": 3},
        {"type": "Red Cards", "value": null}
      ]
    },
    {
      "team": {"name": "Chelsea"},
      "statistics": [
        {"type": "expected_goals", "value": null},
        {"type": "Ball Possession", "value": "55%"}
      ]
    }
  ]
}`))
	})

	stats, err := c.FixtureStatistics(context.Background(), 1100)
	if err != nil {
		t.Fatal(err)
	}
	if len(stats) != 2 {
		t.Fatalf("got %d teams, want 2", len(stats))
	}
	home := stats[0]
	if !home.XG.Valid || home.XG.Float64 != 1.82 {
		t.Errorf("bad xG: %+v", home.XG)
	}
	if !home.Cards.Valid || home.Cards.Int64 != 3 {
		t.Errorf("bad cards: %+v", home.Cards)
	}
	away := stats[1]
	if away.XG.Valid {
		t.Errorf("null xG parsed as valid: %+v", away.XG)
	}
	if away.Cards.Valid {
		t.Errorf("cards reported without any card stat: %+v", away.Cards)
	}
}
