// Package config builds the process-wide configuration struct. It is
// constructed once at startup and passed into constructors explicitly; no
// package reads the environment on its own.
package config

import (
	"github.com/spf13/viper"

	"github.com/mubarak-24/football-matches/internal/utils"
	"github.com/mubarak-24/football-matches/pkg/news"
)

type Config struct {
	DBPath   string
	Timezone string

	// API-Football
	APIFootballKey string
	LeagueIDs      []int64
	TeamIDs        []int64

	// News selection
	Feeds             []string
	NewsMaxItems      int
	NewsHoursBack     int
	NewsMinScore      float64
	YesterdayMaxItems int

	// SMTP delivery
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	EmailTo  string
}

// SetDefaults registers every recognized key so a freshly written config
// file documents itself.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("db.path", "")
	v.SetDefault("timezone", news.DefaultTimezone)
	v.SetDefault("apifootball.key", "")
	v.SetDefault("apifootball.league_ids", "")
	v.SetDefault("apifootball.team_ids", "")
	v.SetDefault("news.feeds", news.DefaultFeeds)
	v.SetDefault("news.max_items", news.DefaultMaxItems)
	v.SetDefault("news.hours_back", news.DefaultHoursBack)
	v.SetDefault("news.min_score", news.DefaultMinScore)
	v.SetDefault("news.yesterday_max_items", news.DefaultYesterdayMaxItems)
	v.SetDefault("smtp.host", "smtp.gmail.com")
	v.SetDefault("smtp.port", 465)
	v.SetDefault("smtp.user", "")
	v.SetDefault("smtp.pass", "")
	v.SetDefault("smtp.to", "")
}

// BindEnv maps the env variable names the original deployment used onto
// the viper keys, so an existing .env keeps working.
func BindEnv(v *viper.Viper) {
	_ = v.BindEnv("db.path", "FOOTDIGEST_DB")
	_ = v.BindEnv("timezone", "TIMEZONE")
	_ = v.BindEnv("apifootball.key", "API_FOOTBALL_KEY")
	_ = v.BindEnv("apifootball.league_ids", "LEAGUE_IDS")
	_ = v.BindEnv("apifootball.team_ids", "TEAM_IDS")
	_ = v.BindEnv("news.max_items", "NEWS_MAX")
	_ = v.BindEnv("news.hours_back", "NEWS_HOURS")
	_ = v.BindEnv("news.min_score", "NEWS_MIN_SCORE")
	_ = v.BindEnv("smtp.host", "SMTP_HOST")
	_ = v.BindEnv("smtp.port", "SMTP_PORT")
	_ = v.BindEnv("smtp.user", "SMTP_USER")
	_ = v.BindEnv("smtp.pass", "SMTP_PASS")
	_ = v.BindEnv("smtp.to", "EMAIL_TO")
}

// Load materializes the Config from viper state.
func Load(v *viper.Viper) Config {
	return Config{
		DBPath:            v.GetString("db.path"),
		Timezone:          v.GetString("timezone"),
		APIFootballKey:    v.GetString("apifootball.key"),
		LeagueIDs:         intList(v, "apifootball.league_ids"),
		TeamIDs:           intList(v, "apifootball.team_ids"),
		Feeds:             v.GetStringSlice("news.feeds"),
		NewsMaxItems:      v.GetInt("news.max_items"),
		NewsHoursBack:     v.GetInt("news.hours_back"),
		NewsMinScore:      v.GetFloat64("news.min_score"),
		YesterdayMaxItems: v.GetInt("news.yesterday_max_items"),
		SMTPHost:          v.GetString("smtp.host"),
		SMTPPort:          v.GetInt("smtp.port"),
		SMTPUser:          v.GetString("smtp.user"),
		SMTPPass:          v.GetString("smtp.pass"),
		EmailTo:           v.GetString("smtp.to"),
	}
}

// intList accepts either a comma-separated string (env style) or a YAML
// list of numbers. Non-numeric items are ignored.
func intList(v *viper.Viper, key string) []int64 {
	if s := v.GetString(key); s != "" {
		return utils.ParseIntList(s)
	}
	var out []int64
	for _, n := range v.GetIntSlice(key) {
		out = append(out, int64(n))
	}
	return out
}
