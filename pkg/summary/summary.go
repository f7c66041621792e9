// Package summary generates short bilingual recaps for a finished match.
package summary

import (
	"fmt"

	"github.com/mubarak-24/football-matches/pkg/storage"
)

// English returns a short English recap of the match of the day.
func English(m storage.MatchRecord) string {
	return describe(m, "en")
}

// Arabic returns the Arabic version of the recap.
func Arabic(m storage.MatchRecord) string {
	return describe(m, "ar")
}

func describe(m storage.MatchRecord, lang string) string {
	hg, ag := goalsOrZero(m)
	home, away := m.HomeTeam, m.AwayTeam

	var desc string
	switch {
	case hg == ag:
		if lang == "ar" {
			desc = "انتهت بالتعادل بعد صراع قوي."
		} else {
			desc = "ended in a hard-fought draw."
		}
	default:
		winner, loser := home, away
		if ag > hg {
			winner, loser = away, home
		}
		margin := hg - ag
		if margin < 0 {
			margin = -margin
		}
		switch margin {
		case 1:
			if lang == "ar" {
				desc = fmt.Sprintf("حسمها %s بفارق هدف واحد فقط ضد %s.", winner, loser)
			} else {
				desc = fmt.Sprintf("%s edged past %s by a single goal.", winner, loser)
			}
		case 2:
			if lang == "ar" {
				desc = fmt.Sprintf("%s فرض سيطرته على %s بفارق هدفين.", winner, loser)
			} else {
				desc = fmt.Sprintf("%s showed control with a two-goal margin over %s.", winner, loser)
			}
		default:
			if lang == "ar" {
				desc = fmt.Sprintf("%s اكتسح %s بفوز كبير.", winner, loser)
			} else {
				desc = fmt.Sprintf("%s dominated %s with a big win.", winner, loser)
			}
		}
	}

	if lang == "ar" {
		return fmt.Sprintf("مباراة الأمس: %s %d-%d %s.\n%s\nالدوري: %s.", home, hg, ag, away, desc, m.LeagueName)
	}
	return fmt.Sprintf("Match of the Day: %s %d-%d %s.\nThe game %s\nLeague: %s.", home, hg, ag, away, desc, m.LeagueName)
}

func goalsOrZero(m storage.MatchRecord) (int64, int64) {
	hg, ag := int64(0), int64(0)
	if m.HomeGoals.Valid {
		hg = m.HomeGoals.Int64
	}
	if m.AwayGoals.Valid {
		ag = m.AwayGoals.Int64
	}
	return hg, ag
}
