package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pable/go-ipl-stats/internal/report"
)

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List every team that has played",
	Args:  cobra.NoArgs,
	RunE:  runTeams,
}

func init() {
	addJSONFlag(teamsCmd)
}

func runTeams(cmd *cobra.Command, args []string) error {
	engine, err := loadEngine(cmd.Context())
	if err != nil {
		return err
	}
	res := engine.TeamsPlayed()
	if jsonOutput {
		return report.WriteJSON(cmd.OutOrStdout(), res, true)
	}
	report.PrintTeams(cmd.OutOrStdout(), res)
	return nil
}
