// Package digest assembles the email sections from selector output.
package digest

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mubarak-24/football-matches/pkg/config"
	"github.com/mubarak-24/football-matches/pkg/match"
	"github.com/mubarak-24/football-matches/pkg/news"
	"github.com/mubarak-24/football-matches/pkg/storage"
	"github.com/mubarak-24/football-matches/pkg/summary"
)

// Builder renders the digest sections. It consumes the selector contracts
// and never reaches into scoring logic itself.
type Builder struct {
	cfg      config.Config
	db       *storage.DB
	selector *news.Selector
	loc      *time.Location

	// Now overrides the clock, for tests.
	Now func() time.Time
}

func NewBuilder(cfg config.Config, db *storage.DB, selector *news.Selector) (*Builder, error) {
	tz := cfg.Timezone
	if tz == "" {
		tz = news.DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return &Builder{cfg: cfg, db: db, selector: selector, loc: loc, Now: time.Now}, nil
}

func (b *Builder) localToday() time.Time {
	return b.Now().In(b.loc)
}

// PrevResults renders yesterday's full-time results, the top three ranked
// matches, and an EN/AR recap of the best one. The returned id is the match
// of the day (0 when there were no results).
func (b *Builder) PrevResults(ctx context.Context) (string, int64, error) {
	yday := b.localToday().AddDate(0, 0, -1).Format("2006-01-02")

	rows, err := b.db.FinishedOn(ctx, yday, nil)
	if err != nil {
		return "", 0, err
	}

	lines := []string{fmt.Sprintf("🔁 Yesterday's Results (%s):", yday)}
	if len(rows) == 0 {
		lines = append(lines, "- لا توجد نتائج.")
		return strings.Join(lines, "\n"), 0, nil
	}

	for i, r := range rows {
		lines = append(lines, fmt.Sprintf("%d) %s %s-%s %s — %s",
			i+1, r.HomeTeam, goalStr(r.HomeGoals), goalStr(r.AwayGoals), r.AwayTeam, r.LeagueName))
	}

	var motd int64
	if len(b.cfg.LeagueIDs) > 0 {
		ranked, err := b.db.FinishedOn(ctx, yday, b.cfg.LeagueIDs)
		if err != nil {
			return "", 0, err
		}
		top := match.PickTop(ranked, 3)
		if len(top) > 0 {
			lines = append(lines, "", "⭐ Top 3 Matches of Yesterday")
			for i, m := range top {
				lines = append(lines, fmt.Sprintf("%d. %s %s-%s %s — %s",
					i+1, m.HomeTeam, goalStr(m.HomeGoals), goalStr(m.AwayGoals), m.AwayTeam, m.LeagueName))
			}
			motd = top[0].ID
			lines = append(lines, "", "— EN Recap —", summary.English(top[0]))
			lines = append(lines, "", "— AR ملخص —", summary.Arabic(top[0]))
		}
	}

	return strings.Join(lines, "\n"), motd, nil
}

// NewsBulletin renders the rolling-window news section.
func (b *Builder) NewsBulletin(ctx context.Context) string {
	items := b.selector.Select(ctx, b.cfg.NewsMaxItems, b.cfg.NewsHoursBack)
	if len(items) == 0 {
		return "📰 Football News (last 24h)\n- لا توجد عناوين مهمة الآن."
	}
	lines := []string{"📰 Football News (last 24h — filtered)"}
	for _, it := range items {
		lines = append(lines, newsLine(it))
	}
	return strings.Join(lines, "\n")
}

// YesterdayNewsBulletin renders the yesterday-only news section.
func (b *Builder) YesterdayNewsBulletin(ctx context.Context) (string, error) {
	yday := b.localToday().AddDate(0, 0, -1).Format("2006-01-02")

	items, err := b.selector.SelectYesterday(ctx, b.cfg.YesterdayMaxItems, b.cfg.Timezone)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return fmt.Sprintf("📰 Yesterday's Football News (%s)\n- لا توجد عناوين مهمة ليوم أمس.", yday), nil
	}
	lines := []string{fmt.Sprintf("📰 Yesterday's Football News (%s — filtered)", yday)}
	for _, it := range items {
		lines = append(lines, newsLine(it))
	}
	return strings.Join(lines, "\n"), nil
}

// TodayFixtures lists today's not-yet-started fixtures from storage.
func (b *Builder) TodayFixtures(ctx context.Context) (string, error) {
	today := b.localToday().Format("2006-01-02")
	return b.fixturesSection(ctx, today, fmt.Sprintf("⏰ Today's Fixtures (%s):", today))
}

// TomorrowFixtures lists tomorrow's fixtures from storage.
func (b *Builder) TomorrowFixtures(ctx context.Context) (string, error) {
	tomorrow := b.localToday().AddDate(0, 0, 1).Format("2006-01-02")
	return b.fixturesSection(ctx, tomorrow, fmt.Sprintf("📅 Tomorrow's Fixtures (%s):", tomorrow))
}

func (b *Builder) fixturesSection(ctx context.Context, date, header string) (string, error) {
	rows, err := b.db.ScheduledOn(ctx, date)
	if err != nil {
		return "", err
	}
	lines := []string{header}
	if len(rows) == 0 {
		lines = append(lines, "- لا توجد مباريات.")
		return strings.Join(lines, "\n"), nil
	}
	for i, r := range rows {
		lines = append(lines, fmt.Sprintf("%d) %s vs %s — %s", i+1, r.HomeTeam, r.AwayTeam, r.LeagueName))
	}
	return strings.Join(lines, "\n"), nil
}

// All renders the full daily digest: results, yesterday's news, and the
// fixtures for today and tomorrow.
func (b *Builder) All(ctx context.Context) (string, int64, error) {
	prev, motd, err := b.PrevResults(ctx)
	if err != nil {
		return "", 0, err
	}
	ydayNews, err := b.YesterdayNewsBulletin(ctx)
	if err != nil {
		return "", 0, err
	}
	today, err := b.TodayFixtures(ctx)
	if err != nil {
		return "", 0, err
	}
	tomorrow, err := b.TomorrowFixtures(ctx)
	if err != nil {
		return "", 0, err
	}
	return strings.Join([]string{prev, ydayNews, today, tomorrow}, "\n\n"), motd, nil
}

func newsLine(e news.Entry) string {
	return fmt.Sprintf("- [%s] %s  (score: %v)\n  %s", e.Source, e.Title, news.Round3(e.Score), e.Link)
}

func goalStr(n sql.NullInt64) string {
	if !n.Valid {
		return "-"
	}
	return strconv.FormatInt(n.Int64, 10)
}
