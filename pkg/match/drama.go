package match

import "sort"

// GoalEvent is one goal in a match timeline, as reported by the fixtures
// events endpoint.
type GoalEvent struct {
	Minute int
	Extra  int // stoppage-time minutes, 0 if none
	Home   bool
}

// A goal from this minute on counts as late drama.
const lateGoalMinute = 85

// LeadChanges walks the goal timeline and counts how many times the lead
// swapped from one side to the other (an equalizer alone is not a change;
// the other side has to go in front).
func LeadChanges(goals []GoalEvent) int64 {
	ordered := make([]GoalEvent, len(goals))
	copy(ordered, goals)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Minute != ordered[j].Minute {
			return ordered[i].Minute < ordered[j].Minute
		}
		return ordered[i].Extra < ordered[j].Extra
	})

	home, away := 0, 0
	prevLeader := 0
	var changes int64
	for _, g := range ordered {
		if g.Home {
			home++
		} else {
			away++
		}
		leader := 0
		if home > away {
			leader = 1
		} else if away > home {
			leader = -1
		}
		if leader != 0 {
			if prevLeader != 0 && leader != prevLeader {
				changes++
			}
			prevLeader = leader
		}
	}
	return changes
}

// LateDrama reports whether any goal fell in the closing minutes.
func LateDrama(goals []GoalEvent) int64 {
	for _, g := range goals {
		if g.Minute >= lateGoalMinute {
			return 1
		}
	}
	return 0
}
