package news

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Selection defaults, overridable via Options.
const (
	DefaultMaxItems          = 8
	DefaultYesterdayMaxItems = 6
	DefaultHoursBack         = 24
	DefaultMinScore          = 2.5
	DefaultTimezone          = "Asia/Riyadh"

	// fallbackSize is how many best-effort entries to return when nothing
	// clears the score threshold. Keeps the digest section non-empty.
	fallbackSize = 3
)

// Options tunes a Selector. Zero values fall back to the defaults above.
type Options struct {
	MinScore float64

	// Now overrides the clock, for tests. Nil means time.Now.
	Now func() time.Time
}

// Selector runs the full selection pipeline: collect, score, window-filter,
// dedup, threshold, sort, fallback, truncate. It holds no state between
// runs; every call recomputes from freshly fetched feeds.
type Selector struct {
	scorer   *Scorer
	reader   FeedReader
	minScore float64
	now      func() time.Time
}

func NewSelector(scorer *Scorer, reader FeedReader, opts Options) *Selector {
	s := &Selector{
		scorer:   scorer,
		reader:   reader,
		minScore: opts.MinScore,
		now:      opts.Now,
	}
	if s.minScore == 0 {
		s.minScore = DefaultMinScore
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Select returns the top headlines published within the last hoursBack
// hours. Items without a publish time are included: in a rolling window we
// would rather show an undated headline than silently drop it.
func (s *Selector) Select(ctx context.Context, maxItems, hoursBack int) []Entry {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	if hoursBack <= 0 {
		hoursBack = DefaultHoursBack
	}
	cutoff := s.now().UTC().Add(-time.Duration(hoursBack) * time.Hour)

	var items []Entry
	for _, page := range s.reader.Pages(ctx) {
		for _, it := range page.Items {
			if it.Published != nil && it.Published.Before(cutoff) {
				continue
			}
			items = append(items, s.entry(it, page.Source))
		}
	}
	return s.finalize(items, maxItems)
}

// SelectYesterday returns the top headlines published during yesterday's
// local calendar day in the given timezone. Items without a publish time
// are excluded here: without a timestamp there is no way to verify the
// headline belongs to the target day.
func (s *Selector) SelectYesterday(ctx context.Context, maxItems int, tz string) ([]Entry, error) {
	if maxItems <= 0 {
		maxItems = DefaultYesterdayMaxItems
	}
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	target := localDate(s.now().In(loc).AddDate(0, 0, -1))

	var items []Entry
	for _, page := range s.reader.Pages(ctx) {
		for _, it := range page.Items {
			if it.Published == nil {
				continue
			}
			if localDate(it.Published.In(loc)) != target {
				continue
			}
			items = append(items, s.entry(it, page.Source))
		}
	}
	return s.finalize(items, maxItems), nil
}

func (s *Selector) entry(it RawItem, source string) Entry {
	return Entry{
		Title:     it.Title,
		Link:      it.Link,
		Source:    source,
		Published: it.Published,
		Score:     s.scorer.Score(it.Title, source),
	}
}

// finalize is the pipeline tail shared by both window modes.
func (s *Selector) finalize(items []Entry, maxItems int) []Entry {
	deduped := dedupByTitle(items)

	var filtered []Entry
	for _, e := range deduped {
		if e.Score >= s.minScore {
			filtered = append(filtered, e)
		}
	}
	sortEntries(filtered)

	// Fallback: nothing cleared the threshold, return the best few anyway
	// so the digest never ships an empty section while candidates exist.
	if len(filtered) == 0 {
		sortEntries(deduped)
		n := fallbackSize
		if maxItems < n {
			n = maxItems
		}
		if len(deduped) < n {
			n = len(deduped)
		}
		filtered = deduped[:n]
	}

	if len(filtered) > maxItems {
		filtered = filtered[:maxItems]
	}
	return filtered
}

// dedupByTitle drops entries whose trimmed, lowercased title was already
// seen, keeping the first occurrence in feed-iteration order.
func dedupByTitle(items []Entry) []Entry {
	seen := make(map[string]struct{}, len(items))
	out := make([]Entry, 0, len(items))
	for _, it := range items {
		key := norm(it.Title)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	return out
}

// sortEntries orders by score descending, then publish time descending as a
// string compare on RFC 3339 (missing timestamps sort last).
func sortEntries(items []Entry) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return publishedKey(items[i]) > publishedKey(items[j])
	})
}

func publishedKey(e Entry) string {
	if e.Published == nil {
		return ""
	}
	return e.Published.UTC().Format(time.RFC3339)
}

func localDate(t time.Time) string {
	return t.Format("2006-01-02")
}
