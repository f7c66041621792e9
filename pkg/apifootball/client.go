// Package apifootball is a thin client for the API-Football v3 REST API.
package apifootball

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"github.com/mubarak-24/football-matches/pkg/storage"
)

const (
	BaseURL   = "https://v3.football.api-sports.io"
	userAgent = "football-digest/1.0"
)

type Client struct {
	apiKey  string
	baseURL string
	http    *retryablehttp.Client
}

func NewClient(apiKey string) *Client {
	rc := retryablehttp.NewClient()
	rc.Logger = log.New(io.Discard, "", 0)
	rc.RetryMax = 3
	rc.HTTPClient.Timeout = 30 * time.Second
	return &Client{apiKey: apiKey, baseURL: BaseURL, http: rc}
}

// SetBaseURL points the client at a different endpoint. Used by tests.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// get performs an authenticated GET and returns the raw JSON body.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("API_FOOTBALL_KEY is not set")
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", c.baseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("x-apisports-key", c.apiKey)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("api-football request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode == 429 {
		detail := gjson.GetBytes(body, "message").String()
		if detail == "" {
			detail = snippet(body)
		}
		return "", fmt.Errorf("api-football rate limit (429): %s", detail)
	}
	if resp.StatusCode != 200 {
		return "", fmt.Errorf("api-football error %d: %s", resp.StatusCode, snippet(body))
	}
	return string(body), nil
}

// FixturesByDate fetches fixtures for an ISO date (YYYY-MM-DD), optionally
// filtered by league and team ids. API-Football accepts the date combined
// with repeated league/team params, so one call covers all filters.
func (c *Client) FixturesByDate(ctx context.Context, date string, leagueIDs, teamIDs []int64) ([]storage.MatchRecord, error) {
	params := url.Values{}
	params.Set("date", date)
	for _, id := range leagueIDs {
		params.Add("league", strconv.FormatInt(id, 10))
	}
	for _, id := range teamIDs {
		params.Add("team", strconv.FormatInt(id, 10))
	}

	body, err := c.get(ctx, "/fixtures", params)
	if err != nil {
		return nil, err
	}

	var out []storage.MatchRecord
	for _, m := range gjson.Get(body, "response").Array() {
		rec := storage.MatchRecord{
			ID:         m.Get("fixture.id").Int(),
			DateUTC:    m.Get("fixture.date").String(),
			LeagueID:   m.Get("league.id").Int(),
			LeagueName: m.Get("league.name").String(),
			HomeTeam:   m.Get("teams.home.name").String(),
			AwayTeam:   m.Get("teams.away.name").String(),
			Status:     m.Get("fixture.status.short").String(),
			HomeGoals:  nullInt(m.Get("goals.home")),
			AwayGoals:  nullInt(m.Get("goals.away")),
		}
		if rec.ID == 0 {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// GoalEvent is one goal from the fixture events timeline.
type GoalEvent struct {
	Minute   int
	Extra    int
	TeamName string
}

// FixtureGoals returns the goal timeline of a fixture. Disallowed and
// missed penalties are not goals and are skipped.
func (c *Client) FixtureGoals(ctx context.Context, fixtureID int64) ([]GoalEvent, error) {
	params := url.Values{}
	params.Set("fixture", strconv.FormatInt(fixtureID, 10))

	body, err := c.get(ctx, "/fixtures/events", params)
	if err != nil {
		return nil, err
	}

	var goals []GoalEvent
	for _, ev := range gjson.Get(body, "response").Array() {
		if ev.Get("type").String() != "Goal" {
			continue
		}
		if strings.Contains(ev.Get("detail").String(), "Missed") {
			continue
		}
		goals = append(goals, GoalEvent{
			Minute:   int(ev.Get("time.elapsed").Int()),
			Extra:    int(ev.Get("time.extra").Int()),
			TeamName: ev.Get("team.name").String(),
		})
	}
	return goals, nil
}

// TeamStats carries the per-team statistics the scorer cares about.
type TeamStats struct {
	TeamName string
	XG       sql.NullFloat64
	Cards    sql.NullInt64
}

// FixtureStatistics returns xG and card counts per team for a fixture.
// Competitions without stats coverage yield an empty slice, not an error.
func (c *Client) FixtureStatistics(ctx context.Context, fixtureID int64) ([]TeamStats, error) {
	params := url.Values{}
	params.Set("fixture", strconv.FormatInt(fixtureID, 10))

	body, err := c.get(ctx, "/fixtures/statistics", params)
	if err != nil {
		return nil, err
	}

	var out []TeamStats
	for _, team := range gjson.Get(body, "response").Array() {
		ts := TeamStats{TeamName: team.Get("team.name").String()}
		cards := int64(0)
		cardsSeen := false
		for _, st := range team.Get("statistics").Array() {
			val := st.Get("value")
			switch st.Get("type").String() {
			case "expected_goals":
				if xg, err := strconv.ParseFloat(val.String(), 64); err == nil {
					ts.XG = sql.NullFloat64{Float64: xg, Valid: true}
				}
			case "Yellow Cards", "Red Cards":
				cardsSeen = true
				cards += val.Int()
			}
		}
		if cardsSeen {
			ts.Cards = sql.NullInt64{Int64: cards, Valid: true}
		}
		out = append(out, ts)
	}
	return out, nil
}

func nullInt(r gjson.Result) sql.NullInt64 {
	if !r.Exists() || r.Type == gjson.Null {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: r.Int(), Valid: true}
}

func snippet(body []byte) string {
	s := string(body)
	if len(s) > 300 {
		s = s[:300]
	}
	return s
}
