package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pable/go-ipl-stats/internal/report"
)

var batterCmd = &cobra.Command{
	Use:   "batter <name>",
	Short: "Show a batter's career record and splits by opponent",
	Args:  cobra.ExactArgs(1),
	RunE:  runBatter,
}

func init() {
	addJSONFlag(batterCmd)
}

func runBatter(cmd *cobra.Command, args []string) error {
	engine, err := loadEngine(cmd.Context())
	if err != nil {
		return err
	}
	rep, err := engine.BatsmanFullReport(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("batting report: %w", err)
	}
	if jsonOutput {
		return report.WriteJSON(cmd.OutOrStdout(), report.Keyed(args[0], rep), true)
	}
	report.PrintBattingReport(cmd.OutOrStdout(), args[0], rep, engine.Store().Teams())
	return nil
}
