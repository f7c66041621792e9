package apifootball

import (
	"context"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"
)

// League is one competition from the discover endpoints.
type League struct {
	ID      int64
	Name    string
	Type    string // League or Cup
	Country string
}

// Team is one club from the team search endpoint.
type Team struct {
	ID      int64
	Name    string
	Code    string
	Country string
	City    string
}

// Leagues searches competitions by country and/or free text, optionally
// pinned to a season year.
func (c *Client) Leagues(ctx context.Context, country, search string, season int) ([]League, error) {
	params := url.Values{}
	if country != "" {
		params.Set("country", country)
	}
	if search != "" {
		params.Set("search", search)
	}
	if season > 0 {
		params.Set("season", strconv.Itoa(season))
	}

	body, err := c.get(ctx, "/leagues", params)
	if err != nil {
		return nil, err
	}
	return parseLeagues(body), nil
}

// Teams searches clubs by name fragment.
func (c *Client) Teams(ctx context.Context, search string) ([]Team, error) {
	params := url.Values{}
	params.Set("search", search)

	body, err := c.get(ctx, "/teams", params)
	if err != nil {
		return nil, err
	}

	var out []Team
	for _, item := range gjson.Get(body, "response").Array() {
		out = append(out, Team{
			ID:      item.Get("team.id").Int(),
			Name:    item.Get("team.name").String(),
			Code:    item.Get("team.code").String(),
			Country: item.Get("team.country").String(),
			City:    item.Get("venue.city").String(),
		})
	}
	return out, nil
}

// TeamLeagues lists the competitions a team plays in for a season. Handy
// for finding which cup ids to track alongside the domestic league.
func (c *Client) TeamLeagues(ctx context.Context, teamID int64, season int) ([]League, error) {
	params := url.Values{}
	params.Set("team", strconv.FormatInt(teamID, 10))
	params.Set("season", strconv.Itoa(season))

	body, err := c.get(ctx, "/leagues", params)
	if err != nil {
		return nil, err
	}
	return parseLeagues(body), nil
}

func parseLeagues(body string) []League {
	var out []League
	for _, item := range gjson.Get(body, "response").Array() {
		out = append(out, League{
			ID:      item.Get("league.id").Int(),
			Name:    item.Get("league.name").String(),
			Type:    item.Get("league.type").String(),
			Country: item.Get("country.name").String(),
		})
	}
	return out
}
