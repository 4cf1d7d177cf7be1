// Package main is the entry point for the iplstats CLI, which loads the IPL
// match and ball-by-ball tables and serves team and player records.
package main

import "github.com/pable/go-ipl-stats/cmd"

func main() {
	cmd.Execute()
}
