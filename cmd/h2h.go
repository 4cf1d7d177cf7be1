package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pable/go-ipl-stats/internal/report"
)

var h2hCmd = &cobra.Command{
	Use:   "h2h <team1> <team2>",
	Short: "Show team1's record against team2",
	Args:  cobra.ExactArgs(2),
	RunE:  runH2H,
}

func init() {
	addJSONFlag(h2hCmd)
}

func runH2H(cmd *cobra.Command, args []string) error {
	engine, err := loadEngine(cmd.Context())
	if err != nil {
		return err
	}
	res := engine.HeadToHead(args[0], args[1])
	if jsonOutput {
		return report.WriteJSON(cmd.OutOrStdout(), res, true)
	}
	report.PrintHeadToHead(cmd.OutOrStdout(), args[0], args[1], res)
	return nil
}
