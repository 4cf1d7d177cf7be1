package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pable/go-ipl-stats/internal/report"
)

var bowlerCmd = &cobra.Command{
	Use:   "bowler <name>",
	Short: "Show a bowler's career record and splits by opponent",
	Args:  cobra.ExactArgs(1),
	RunE:  runBowler,
}

func init() {
	addJSONFlag(bowlerCmd)
}

func runBowler(cmd *cobra.Command, args []string) error {
	engine, err := loadEngine(cmd.Context())
	if err != nil {
		return err
	}
	rep, err := engine.BowlerFullReport(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("bowling report: %w", err)
	}
	if jsonOutput {
		return report.WriteJSON(cmd.OutOrStdout(), report.Keyed(args[0], rep), true)
	}
	report.PrintBowlingReport(cmd.OutOrStdout(), args[0], rep, engine.Store().Teams())
	return nil
}
