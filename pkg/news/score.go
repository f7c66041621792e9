package news

import (
	"math"
	"regexp"
	"strings"
	"time"
)

// Entry is one scored headline pulled from a feed. Entries are built at
// scoring time and live for exactly one selection run.
type Entry struct {
	Title     string     `json:"title"`
	Link      string     `json:"link"`
	Source    string     `json:"source"`
	Published *time.Time `json:"published,omitempty"`
	Score     float64    `json:"score"`
}

// Scoring weights. Tunable without touching the scoring shape.
const (
	clubBonus       = 2.0
	leagueBonus     = 1.5
	positiveWeight  = 0.6
	positiveHitsCap = 3
	negativePenalty = 0.8
)

// Scorer computes a relevance score for a headline. It is a pure function
// of its keyword tables: the same (title, source) pair always scores the
// same, regardless of table iteration order.
type Scorer struct {
	kw       Keywords
	negative []*regexp.Regexp
}

// NewScorer compiles the negative patterns up front. Invalid patterns in a
// customized table are a programming error and panic at construction.
func NewScorer(kw Keywords) *Scorer {
	s := &Scorer{kw: kw}
	for _, p := range kw.Negative {
		s.negative = append(s.negative, regexp.MustCompile(`(?i)`+p))
	}
	return s
}

// Score rates a headline by club/league keyword hits, positive and negative
// phrase signals, and the reputation of its source. The result can be
// negative; comparisons use full precision and Round3 is display-only.
func (s *Scorer) Score(title, source string) float64 {
	t := norm(title)
	src := norm(source)

	base := s.clubHits(t, src)
	base += s.leagueHits(t, src)
	base += s.positiveHits(t)
	base -= s.negativePenalty(t)
	return base * s.sourceWeight(src)
}

// clubHits adds a strong bonus for each distinct club mentioned. Scanning a
// club's aliases stops at the first hit so a club never scores twice.
func (s *Scorer) clubHits(title, source string) float64 {
	score := 0.0
	for _, aliases := range s.kw.Clubs {
		for _, a := range aliases {
			a = strings.ToLower(a)
			if a != "" && (strings.Contains(title, a) || strings.Contains(source, a)) {
				score += clubBonus
				break
			}
		}
	}
	return score
}

func (s *Scorer) leagueHits(title, source string) float64 {
	score := 0.0
	for _, kw := range s.kw.Leagues {
		kw = strings.ToLower(kw)
		if strings.Contains(title, kw) || strings.Contains(source, kw) {
			score += leagueBonus
		}
	}
	return score
}

// positiveHits counts distinct positive words in the title, capped for
// diminishing returns.
func (s *Scorer) positiveHits(title string) float64 {
	hits := 0
	for _, w := range s.kw.Positive {
		if strings.Contains(title, strings.ToLower(w)) {
			hits++
		}
	}
	if hits > positiveHitsCap {
		hits = positiveHitsCap
	}
	return float64(hits) * positiveWeight
}

func (s *Scorer) negativePenalty(title string) float64 {
	penalty := 0.0
	for _, rx := range s.negative {
		if rx.MatchString(title) {
			penalty += negativePenalty
		}
	}
	return penalty
}

// sourceWeight looks up the multiplier by substring match against the
// normalized source name. Unknown sources get no boost.
func (s *Scorer) sourceWeight(source string) float64 {
	for _, sw := range s.kw.SourceWeights {
		if strings.Contains(source, sw.Substring) {
			return sw.Weight
		}
	}
	return 1.0
}

// Round3 rounds a score to three decimals for display.
func Round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
