package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mubarak-24/football-matches/internal/utils"
	"github.com/mubarak-24/football-matches/pkg/apifootball"
	"github.com/mubarak-24/football-matches/pkg/config"
	"github.com/mubarak-24/football-matches/pkg/match"
	"github.com/mubarak-24/football-matches/pkg/news"
	"github.com/mubarak-24/football-matches/pkg/storage"
)

// fetchCmd pulls fixtures (and optionally match statistics) into SQLite.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch fixtures from API-Football into the local database",
	Long: `Fetches fixtures for a date (default: today in the configured timezone)
or an inclusive date range, filtered by the configured league and team ids,
and stores them in SQLite. With --stats, finished matches are enriched with
xG, cards and the goal timeline (lead changes, late drama).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		date, _ := cmd.Flags().GetString("date")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		withStats, _ := cmd.Flags().GetBool("stats")

		dates, err := resolveDates(cfg, date, from, to)
		if err != nil {
			return err
		}

		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		lock, err := utils.NewDBLock(cfg.DBPath)
		if err != nil {
			return err
		}
		if err := lock.Lock(); err != nil {
			return err
		}
		defer lock.Unlock()

		client := apifootball.NewClient(cfg.APIFootballKey)
		ctx := cmd.Context()

		total := 0
		for _, d := range dates {
			rows, err := client.FixturesByDate(ctx, d, cfg.LeagueIDs, cfg.TeamIDs)
			if err != nil {
				return err
			}
			saved, err := db.UpsertFixtures(ctx, rows)
			if err != nil {
				return err
			}
			utils.Log.Infof("Saved %d matches for %s", saved, d)
			total += saved

			if withStats {
				enrichStats(ctx, db, client, d)
			}
		}
		utils.Log.Infof("Done, %d matches saved", total)
		return nil
	},
}

// resolveDates turns the date flags into a list of ISO dates to fetch.
func resolveDates(cfg config.Config, date, from, to string) ([]string, error) {
	if from != "" || to != "" {
		if from == "" || to == "" {
			return nil, fmt.Errorf("--from and --to must be given together")
		}
		s, err := time.Parse("2006-01-02", from)
		if err != nil {
			return nil, fmt.Errorf("invalid --from date: %w", err)
		}
		e, err := time.Parse("2006-01-02", to)
		if err != nil {
			return nil, fmt.Errorf("invalid --to date: %w", err)
		}
		if e.Before(s) {
			s, e = e, s
		}
		var dates []string
		for cur := s; !cur.After(e); cur = cur.AddDate(0, 0, 1) {
			dates = append(dates, cur.Format("2006-01-02"))
		}
		return dates, nil
	}

	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return nil, fmt.Errorf("invalid --date: %w", err)
		}
		return []string{date}, nil
	}

	tz := cfg.Timezone
	if tz == "" {
		tz = news.DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return []string{time.Now().In(loc).Format("2006-01-02")}, nil
}

// enrichStats fills xG, cards and drama columns for finished matches on a
// date that don't have them yet. Per-fixture API faults are logged and
// skipped; enrichment is best-effort.
func enrichStats(ctx context.Context, db *storage.DB, client *apifootball.Client, date string) {
	pending, err := db.PendingStats(ctx, date)
	if err != nil {
		utils.Log.Warnf("Could not list matches pending stats: %v", err)
		return
	}
	if len(pending) == 0 {
		return
	}
	pendingSet := make(map[int64]struct{}, len(pending))
	for _, id := range pending {
		pendingSet[id] = struct{}{}
	}

	rows, err := db.FinishedOn(ctx, date, nil)
	if err != nil {
		utils.Log.Warnf("Could not load finished matches: %v", err)
		return
	}

	for _, rec := range rows {
		if _, ok := pendingSet[rec.ID]; !ok {
			continue
		}

		goals, err := client.FixtureGoals(ctx, rec.ID)
		if err != nil {
			utils.Log.Warnf("Skipping events for fixture %d: %v", rec.ID, err)
			continue
		}
		timeline := make([]match.GoalEvent, 0, len(goals))
		for _, g := range goals {
			timeline = append(timeline, match.GoalEvent{
				Minute: g.Minute,
				Extra:  g.Extra,
				Home:   g.TeamName == rec.HomeTeam,
			})
		}

		stats := storage.MatchStats{
			LateDrama:   match.LateDrama(timeline),
			LeadChanges: sql.NullInt64{Int64: match.LeadChanges(timeline), Valid: true},
		}

		teamStats, err := client.FixtureStatistics(ctx, rec.ID)
		if err != nil {
			utils.Log.Warnf("Skipping statistics for fixture %d: %v", rec.ID, err)
		}
		for _, ts := range teamStats {
			if ts.TeamName == rec.HomeTeam {
				stats.XGHome = ts.XG
				stats.CardsHome = ts.Cards
			} else {
				stats.XGAway = ts.XG
				stats.CardsAway = ts.Cards
			}
		}

		if err := db.ApplyStats(ctx, rec.ID, stats); err != nil {
			utils.Log.Warnf("Could not store stats for fixture %d: %v", rec.ID, err)
		}
	}
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().String("date", "", "Fetch one date (YYYY-MM-DD, default: today)")
	fetchCmd.Flags().String("from", "", "Range start date (YYYY-MM-DD), requires --to")
	fetchCmd.Flags().String("to", "", "Range end date (YYYY-MM-DD), requires --from")
	fetchCmd.Flags().Bool("stats", false, "Enrich finished matches with xG, cards and goal timeline")
}
