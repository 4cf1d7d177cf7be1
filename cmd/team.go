package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pable/go-ipl-stats/internal/report"
)

var teamCmd = &cobra.Command{
	Use:   "team <name>",
	Short: "Show a team's overall record and its record against each opponent",
	Args:  cobra.ExactArgs(1),
	RunE:  runTeam,
}

func init() {
	addJSONFlag(teamCmd)
}

func runTeam(cmd *cobra.Command, args []string) error {
	engine, err := loadEngine(cmd.Context())
	if err != nil {
		return err
	}
	rep, err := engine.TeamFullReport(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("team report: %w", err)
	}
	if jsonOutput {
		return report.WriteJSON(cmd.OutOrStdout(), report.Keyed(args[0], rep), true)
	}
	report.PrintTeamReport(cmd.OutOrStdout(), args[0], rep, engine.Store().Teams())
	return nil
}
