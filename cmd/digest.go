package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mubarak-24/football-matches/internal/utils"
	"github.com/mubarak-24/football-matches/pkg/apifootball"
	"github.com/mubarak-24/football-matches/pkg/config"
	"github.com/mubarak-24/football-matches/pkg/digest"
	"github.com/mubarak-24/football-matches/pkg/mailer"
	"github.com/mubarak-24/football-matches/pkg/news"
)

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Build a digest section and email it",
	Long: `Builds one section of the football digest (or all of them) and sends it
by email. With SMTP unconfigured the digest is printed instead, which makes
for an easy dry run.`,
}

type digestPart struct {
	use      string
	short    string
	subject  string
	fixtures bool // section needs fresh fixtures from the API
}

var digestParts = []digestPart{
	{"prev", "Yesterday's results (Top 3 + EN/AR recap)", "Football Digest — Yesterday's Results", true},
	{"news", "Latest football news (last 24h, filtered)", "Football Digest — Football News", false},
	{"news-yday", "Yesterday-only top news (filtered)", "Football Digest — Yesterday's Top News", false},
	{"today", "Today's fixtures", "Football Digest — Today's Fixtures", true},
	{"tomorrow", "Tomorrow's fixtures", "Football Digest — Tomorrow's Fixtures", true},
	{"all", "Everything above in one email", "Football Digest — Daily Digest", true},
}

func init() {
	rootCmd.AddCommand(digestCmd)
	for _, p := range digestParts {
		part := p
		digestCmd.AddCommand(&cobra.Command{
			Use:   part.use,
			Short: part.short,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runDigest(cmd.Context(), part)
			},
		})
	}
}

func runDigest(ctx context.Context, part digestPart) error {
	cfg := loadConfig()

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	// Sections listing matches want today's fixtures first; a failing API
	// must not kill the digest, yesterday's data is already stored.
	if part.fixtures {
		if err := refreshFixtures(ctx, cfg); err != nil {
			utils.Log.Warnf("Skipping API fetch: %v", err)
		}
	}

	scorer := news.NewScorer(news.DefaultKeywords())
	reader := news.NewRSSReader(cfg.Feeds)
	selector := news.NewSelector(scorer, reader, news.Options{MinScore: cfg.NewsMinScore})

	builder, err := digest.NewBuilder(cfg, db, selector)
	if err != nil {
		return err
	}

	var body string
	var motd int64
	switch part.use {
	case "prev":
		body, motd, err = builder.PrevResults(ctx)
	case "news":
		body = builder.NewsBulletin(ctx)
	case "news-yday":
		body, err = builder.YesterdayNewsBulletin(ctx)
	case "today":
		body, err = builder.TodayFixtures(ctx)
	case "tomorrow":
		body, err = builder.TomorrowFixtures(ctx)
	case "all":
		body, motd, err = builder.All(ctx)
	}
	if err != nil {
		return err
	}

	m := &mailer.Mailer{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
		To:       cfg.EmailTo,
	}
	if err := m.Send(part.subject, body); err != nil {
		return err
	}

	runDate, err := localToday(cfg)
	if err != nil {
		return err
	}
	if err := db.RecordDigest(ctx, runDate, motd, m.Configured()); err != nil {
		return fmt.Errorf("record digest run: %w", err)
	}
	utils.Log.Infof("Sent: %s", part.subject)
	return nil
}

// refreshFixtures does the pre-digest fetch: yesterday for final scorelines,
// today for the upcoming-fixtures sections.
func refreshFixtures(ctx context.Context, cfg config.Config) error {
	today, err := localToday(cfg)
	if err != nil {
		return err
	}
	t, _ := time.Parse("2006-01-02", today)
	yesterday := t.AddDate(0, 0, -1).Format("2006-01-02")

	client := apifootball.NewClient(cfg.APIFootballKey)

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

	for _, d := range []string{yesterday, today} {
		rows, err := client.FixturesByDate(ctx, d, cfg.LeagueIDs, cfg.TeamIDs)
		if err != nil {
			return err
		}
		saved, err := db.UpsertFixtures(ctx, rows)
		if err != nil {
			return err
		}
		utils.Log.Debugf("Refreshed %d fixtures for %s", saved, d)
	}
	return nil
}

func localToday(cfg config.Config) (string, error) {
	tz := cfg.Timezone
	if tz == "" {
		tz = news.DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return "", fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return time.Now().In(loc).Format("2006-01-02"), nil
}
