package cmd

import "github.com/spf13/cobra"

var jsonOutput bool

func addJSONFlag(c *cobra.Command) {
	c.Flags().BoolVar(&jsonOutput, "json", false, "print JSON instead of a table")
}
