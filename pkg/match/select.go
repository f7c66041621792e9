package match

import (
	"sort"

	"github.com/mubarak-24/football-matches/pkg/storage"
)

// PickTop ranks the given finished matches and returns the best `limit`.
// Ordering is descending by (score, total goals, late drama, -id); the
// negated id as the final key makes the ranking a total order, reproducible
// no matter what order storage handed the rows back in. A limit below 1 is
// coerced to 1. An empty input yields an empty result.
func PickTop(rows []storage.MatchRecord, limit int) []storage.MatchRecord {
	if len(rows) == 0 {
		return nil
	}
	if limit < 1 {
		limit = 1
	}

	ranked := make([]storage.MatchRecord, len(rows))
	copy(ranked, rows)

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		sa, sb := Score(a), Score(b)
		if sa != sb {
			return sa > sb
		}
		if ga, gb := TotalGoals(a), TotalGoals(b); ga != gb {
			return ga > gb
		}
		if a.LateDrama != b.LateDrama {
			return a.LateDrama > b.LateDrama
		}
		return a.ID > b.ID
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
