package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pable/go-ipl-stats/internal/model"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Load the dataset and print a summary",
	Long: `Parse both tables, join them and report row counts, dropped deliveries,
seasons and teams. Exits non-zero if either table cannot be read.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	engine, err := loadEngine(cmd.Context())
	if err != nil {
		return err
	}
	store := engine.Store()
	out := cmd.OutOrStdout()

	seasons := map[string]struct{}{}
	finals := 0
	noResult := 0
	for _, m := range store.Matches() {
		if m.Season != "" {
			seasons[m.Season] = struct{}{}
		}
		if m.MatchNumber == model.FinalMatchNumber {
			finals++
		}
		if !m.HasResult() {
			noResult++
		}
	}
	list := make([]string, 0, len(seasons))
	for s := range seasons {
		list = append(list, s)
	}
	sort.Strings(list)

	fmt.Fprintf(out, "\n=== Dataset ===\n\n")
	fmt.Fprintf(out, "  Matches        : %d (%d finals, %d without result)\n", len(store.Matches()), finals, noResult)
	fmt.Fprintf(out, "  Deliveries     : %d (%d in regular innings)\n", len(store.Deliveries()), len(store.Regular()))
	fmt.Fprintf(out, "  Dropped orphans: %d\n", store.Dropped())
	fmt.Fprintf(out, "  Teams          : %d\n", len(store.Teams()))
	if len(list) > 0 {
		fmt.Fprintf(out, "  Seasons        : %d (%s → %s)\n", len(list), list[0], list[len(list)-1])
	}
	fmt.Fprintln(out)
	return nil
}
