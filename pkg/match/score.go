// Package match ranks finished matches by a heuristic entertainment score.
package match

import (
	"database/sql"

	"github.com/mubarak-24/football-matches/pkg/storage"
)

// Score weights. The formula shape is fixed; tune these.
const (
	WeightGoals      = 3.0
	WeightDraw       = 2.0
	WeightLeadChange = 1.5
	WeightXG         = 1.2
	WeightCards      = 0.8
	WeightUpset      = 2.0
	WeightLateDrama  = 0.5
)

// Score computes the entertainment score of a finished match. It is a pure
// function of the record: missing optional fields count as zero and never
// cause an error.
func Score(m storage.MatchRecord) float64 {
	totalGoals := intOr(m.HomeGoals, 0) + intOr(m.AwayGoals, 0)

	drawBonus := 0.0
	if m.HomeGoals.Valid && m.AwayGoals.Valid && m.HomeGoals.Int64 == m.AwayGoals.Int64 {
		drawBonus = 1.0
	}

	return WeightGoals*float64(totalGoals) +
		WeightDraw*drawBonus +
		WeightLeadChange*float64(intOr(m.LeadChanges, 0)) +
		WeightXG*(floatOr(m.XGHome, 0)+floatOr(m.XGAway, 0)) +
		WeightCards*float64(intOr(m.CardsHome, 0)+intOr(m.CardsAway, 0)) +
		WeightUpset*float64(m.Upset) +
		WeightLateDrama*float64(m.LateDrama)
}

// TotalGoals is the combined scoreline, with missing goals counting as zero.
func TotalGoals(m storage.MatchRecord) int64 {
	return intOr(m.HomeGoals, 0) + intOr(m.AwayGoals, 0)
}

func intOr(n sql.NullInt64, def int64) int64 {
	if n.Valid {
		return n.Int64
	}
	return def
}

func floatOr(f sql.NullFloat64, def float64) float64 {
	if f.Valid {
		return f.Float64
	}
	return def
}
