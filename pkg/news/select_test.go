package news

import (
	"context"
	"testing"
	"time"
)

// stubReader serves canned pages in a fixed order.
type stubReader struct {
	pages []FeedPage
}

func (r *stubReader) Pages(ctx context.Context) []FeedPage {
	return r.pages
}

func testScorer() *Scorer {
	return NewScorer(Keywords{
		Clubs:    map[string][]string{"alpha fc": {"alpha"}, "beta fc": {"beta"}},
		Leagues:  []string{"superleague"},
		Positive: []string{"win"},
		Negative: []string{`\bmaybe\b`},
		SourceWeights: []SourceWeight{
			{"wire", 1.5},
		},
	})
}

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	u := t.UTC()
	return &u
}

// fixedNow is 2025-01-10T02:00 in Asia/Riyadh (UTC+3).
func fixedNow() time.Time {
	return time.Date(2025, 1, 9, 23, 0, 0, 0, time.UTC)
}

func newTestSelector(reader FeedReader, minScore float64) *Selector {
	return NewSelector(testScorer(), reader, Options{MinScore: minScore, Now: fixedNow})
}

func titles(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Title
	}
	return out
}

func TestSelectRecentWindow(t *testing.T) {
	reader := &stubReader{pages: []FeedPage{{
		Source: "wire sports",
		Items: []RawItem{
			{Title: "alpha win today", Published: ts("2025-01-09T10:00:00Z")},
			{Title: "alpha win but stale", Published: ts("2025-01-07T10:00:00Z")},
			{Title: "alpha win undated"}, // no timestamp: lenient mode keeps it
		},
	}}}

	got := newTestSelector(reader, 1).Select(context.Background(), 8, 24)

	want := map[string]bool{"alpha win today": true, "alpha win undated": true}
	if len(got) != 2 {
		t.Fatalf("got %d entries (%v), want 2", len(got), titles(got))
	}
	for _, e := range got {
		if !want[e.Title] {
			t.Errorf("unexpected entry %q", e.Title)
		}
	}
}

func TestSelectDedupKeepsFirstOccurrence(t *testing.T) {
	reader := &stubReader{pages: []FeedPage{
		{Source: "first feed", Items: []RawItem{
			{Title: "  Alpha WIN again  ", Published: ts("2025-01-09T11:00:00Z")},
		}},
		{Source: "second feed", Items: []RawItem{
			{Title: "alpha win again", Published: ts("2025-01-09T12:00:00Z")},
		}},
	}}

	got := newTestSelector(reader, 1).Select(context.Background(), 8, 24)
	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1 after dedup", len(got))
	}
	if got[0].Source != "first feed" {
		t.Errorf("dedup kept entry from %q, want the first occurrence", got[0].Source)
	}
}

func TestSelectThresholdAndOrdering(t *testing.T) {
	reader := &stubReader{pages: []FeedPage{{
		Source: "plain",
		Items: []RawItem{
			// score 2.0: club only
			{Title: "alpha speaks", Published: ts("2025-01-09T08:00:00Z")},
			// score 4.0: two clubs
			{Title: "alpha beta clash", Published: ts("2025-01-09T06:00:00Z")},
			// score 2.6: club + positive word, newer
			{Title: "alpha win late", Published: ts("2025-01-09T12:00:00Z")},
			// score 2.6: same score, older: must sort after the newer one
			{Title: "alpha win early", Published: ts("2025-01-09T05:00:00Z")},
			// score 0.0, filtered out at threshold 2.5
			{Title: "nothing relevant", Published: ts("2025-01-09T13:00:00Z")},
		},
	}}}

	got := newTestSelector(reader, 2.5).Select(context.Background(), 8, 24)

	want := []string{"alpha beta clash", "alpha win late", "alpha win early"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", titles(got), want)
	}
	for i, w := range want {
		if got[i].Title != w {
			t.Errorf("position %d: got %q, want %q", i, got[i].Title, w)
		}
	}
	for _, e := range got {
		if e.Score < 2.5 {
			t.Errorf("entry %q below threshold: %v", e.Title, e.Score)
		}
	}
}

func TestSelectMissingTimestampSortsLast(t *testing.T) {
	reader := &stubReader{pages: []FeedPage{{
		Source: "plain",
		Items: []RawItem{
			{Title: "alpha one"},
			{Title: "alpha two", Published: ts("2025-01-09T01:00:00Z")},
		},
	}}}

	got := newTestSelector(reader, 1).Select(context.Background(), 8, 24)
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if got[0].Title != "alpha two" || got[1].Title != "alpha one" {
		t.Errorf("undated entry should sort last among equal scores, got %v", titles(got))
	}
}

func TestSelectFallbackWhenNothingClearsThreshold(t *testing.T) {
	reader := &stubReader{pages: []FeedPage{{
		Source: "plain",
		Items: []RawItem{
			{Title: "quiet day one", Published: ts("2025-01-09T01:00:00Z")},
			{Title: "quiet day two", Published: ts("2025-01-09T02:00:00Z")},
			{Title: "quiet day three", Published: ts("2025-01-09T03:00:00Z")},
			{Title: "quiet day four", Published: ts("2025-01-09T04:00:00Z")},
			{Title: "alpha quiet day", Published: ts("2025-01-09T05:00:00Z")},
		},
	}}}

	got := newTestSelector(reader, 10).Select(context.Background(), 8, 24)
	if len(got) != 3 {
		t.Fatalf("fallback returned %d entries, want 3", len(got))
	}
	// Best candidate still comes first even below threshold.
	if got[0].Title != "alpha quiet day" {
		t.Errorf("fallback best-first broken, got %v", titles(got))
	}

	// With a smaller maxItems the fallback shrinks accordingly.
	got = newTestSelector(reader, 10).Select(context.Background(), 2, 24)
	if len(got) != 2 {
		t.Errorf("fallback with maxItems=2 returned %d entries", len(got))
	}
}

func TestSelectTruncatesToMaxItems(t *testing.T) {
	var items []RawItem
	for _, suffix := range []string{"one", "two", "three", "four"} {
		items = append(items, RawItem{Title: "alpha win " + suffix, Published: ts("2025-01-09T08:00:00Z")})
	}
	reader := &stubReader{pages: []FeedPage{{Source: "plain", Items: items}}}

	got := newTestSelector(reader, 1).Select(context.Background(), 2, 24)
	if len(got) != 2 {
		t.Errorf("got %d entries, want 2", len(got))
	}
}

func TestSelectYesterdayLocalDayWindow(t *testing.T) {
	// Now is 2025-01-10T02:00 Asia/Riyadh, so the target day is 2025-01-09.
	reader := &stubReader{pages: []FeedPage{{
		Source: "plain",
		Items: []RawItem{
			// 2025-01-09T02:30 local: inside yesterday
			{Title: "alpha win included", Published: ts("2025-01-08T23:30:00Z")},
			// 2025-01-10T01:00 local: already today, excluded
			{Title: "alpha win excluded", Published: ts("2025-01-09T22:00:00Z")},
			// no timestamp: cannot be verified, excluded in this mode
			{Title: "alpha win undated"},
		},
	}}}

	got, err := newTestSelector(reader, 1).SelectYesterday(context.Background(), 6, "Asia/Riyadh")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Title != "alpha win included" {
		t.Errorf("yesterday window selected %v, want only the included entry", titles(got))
	}
}

func TestSelectYesterdayInvalidTimezone(t *testing.T) {
	reader := &stubReader{}
	if _, err := newTestSelector(reader, 1).SelectYesterday(context.Background(), 6, "Mars/Olympus"); err == nil {
		t.Error("expected error for bogus timezone")
	}
}
