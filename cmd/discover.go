package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mubarak-24/football-matches/pkg/apifootball"
)

// discoverCmd groups the API-Football lookup helpers used to find the
// league and team ids worth putting into the config.
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Look up API-Football league and team ids",
}

var discoverLeaguesCmd = &cobra.Command{
	Use:   "leagues",
	Short: "Search leagues by country or free text",
	RunE: func(cmd *cobra.Command, args []string) error {
		country, _ := cmd.Flags().GetString("country")
		search, _ := cmd.Flags().GetString("search")
		season, _ := cmd.Flags().GetInt("season")

		client := apifootball.NewClient(loadConfig().APIFootballKey)
		leagues, err := client.Leagues(cmd.Context(), country, search, season)
		if err != nil {
			return err
		}
		if len(leagues) == 0 {
			fmt.Println("No leagues found.")
			return nil
		}
		printLeagues(leagues)
		return nil
	},
}

var discoverTeamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "Search teams by name",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")

		client := apifootball.NewClient(loadConfig().APIFootballKey)
		teams, err := client.Teams(cmd.Context(), search)
		if err != nil {
			return err
		}
		if len(teams) == 0 {
			fmt.Println("No teams found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCODE\tCOUNTRY\tCITY\t")
		for _, t := range teams {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t\n", t.ID, t.Name, t.Code, t.Country, t.City)
		}
		return w.Flush()
	},
}

var discoverTeamCompsCmd = &cobra.Command{
	Use:   "team-comps",
	Short: "List the competitions a team plays in for a season",
	RunE: func(cmd *cobra.Command, args []string) error {
		team, _ := cmd.Flags().GetInt64("team")
		season, _ := cmd.Flags().GetInt("season")

		client := apifootball.NewClient(loadConfig().APIFootballKey)
		leagues, err := client.TeamLeagues(cmd.Context(), team, season)
		if err != nil {
			return err
		}
		if len(leagues) == 0 {
			fmt.Println("No leagues for that team/season.")
			return nil
		}
		printLeagues(leagues)
		return nil
	},
}

func printLeagues(leagues []apifootball.League) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tCOUNTRY\t")
	for _, l := range leagues {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t\n", l.ID, l.Name, l.Type, l.Country)
	}
	w.Flush()
}

func init() {
	rootCmd.AddCommand(discoverCmd)

	discoverCmd.AddCommand(discoverLeaguesCmd)
	discoverLeaguesCmd.Flags().String("country", "", `Country name, e.g. "Saudi Arabia"`)
	discoverLeaguesCmd.Flags().String("search", "", `Search text, e.g. "Premier" / "La Liga"`)
	discoverLeaguesCmd.Flags().Int("season", 0, "Season year, e.g. 2024")

	discoverCmd.AddCommand(discoverTeamsCmd)
	discoverTeamsCmd.Flags().String("search", "", `Team name fragment, e.g. "Al Ahli Jeddah"`)
	_ = discoverTeamsCmd.MarkFlagRequired("search")

	discoverCmd.AddCommand(discoverTeamCompsCmd)
	discoverTeamCompsCmd.Flags().Int64("team", 0, "Team ID (numeric)")
	discoverTeamCompsCmd.Flags().Int("season", 0, "Season year, e.g. 2024")
	_ = discoverTeamCompsCmd.MarkFlagRequired("team")
	_ = discoverTeamCompsCmd.MarkFlagRequired("season")
}
