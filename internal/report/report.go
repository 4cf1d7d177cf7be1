package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-ipl-stats/internal/model"
	"github.com/pable/go-ipl-stats/internal/storage"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// stat renders a ratio for a table cell: two decimals, "∞" or "—".
func stat(s model.Stat) string {
	switch {
	case s.IsNaN():
		return "—"
	case s.IsInf():
		return "∞"
	}
	return fmt.Sprintf("%.2f", float64(s))
}

func figure(f model.Figure) string {
	if !f.Valid {
		return "—"
	}
	return f.String()
}

// PrintTeams prints the known teams, one per row.
func PrintTeams(w io.Writer, t model.TeamsPlayed) {
	fmt.Fprintf(w, "\n%d teams\n\n", t.Count)
	table := newTable(w)
	table.Header("#", "TEAM")
	for i, name := range t.Teams {
		table.Append(strconv.Itoa(i+1), name)
	}
	table.Render()
}

// PrintHeadToHead prints team1's record against team2.
func PrintHeadToHead(w io.Writer, team1, team2 string, r model.H2HResult) {
	if !r.Valid() {
		fmt.Fprintln(w, model.InvalidTeamResponse)
		return
	}
	fmt.Fprintf(w, "\n%s vs %s\n\n", team1, team2)
	table := newTable(w)
	table.Header("PLAYED", "WON", "LOST", "NO_RESULT")
	table.Append(
		strconv.Itoa(r.Record.Played),
		strconv.Itoa(r.Record.Team1Won),
		strconv.Itoa(r.Record.Team2Won),
		strconv.Itoa(r.Record.NoResult),
	)
	table.Render()
}

// PrintTeamReport prints a team's overall record followed by one row per
// opponent. Opponents the team never met are left out.
func PrintTeamReport(w io.Writer, team string, rep model.TeamReport, opponents []string) {
	if !rep.Overall.Valid() {
		fmt.Fprintln(w, model.InvalidTeamResponse)
		return
	}
	o := rep.Overall.Record
	fmt.Fprintf(w, "\n%s  |  Played: %d  |  Won: %d  |  Lost: %d  |  No result: %d  |  Titles: %d  |  Win: %.1f%%\n\n",
		team, o.Played, o.Won, o.Loss, o.NoResult, o.Titles, o.WinPercent())

	table := newTable(w)
	table.Header("OPPONENT", "PLAYED", "WON", "LOST", "NO_RESULT")
	for _, opp := range opponents {
		r, ok := rep.Against[opp]
		if !ok || !r.Valid() || r.Record.Played == 0 {
			continue
		}
		table.Append(
			opp,
			strconv.Itoa(r.Record.Played),
			strconv.Itoa(r.Record.Team1Won),
			strconv.Itoa(r.Record.Team2Won),
			strconv.Itoa(r.Record.NoResult),
		)
	}
	table.Render()
}

// PrintBattingReport prints a batter's career line and the split against
// each opponent they faced.
func PrintBattingReport(w io.Writer, batter string, rep model.BattingReport, opponents []string) {
	if rep.All.Empty() {
		fmt.Fprintf(w, "no batting record for %q\n", batter)
		return
	}
	fmt.Fprintf(w, "\n%s — batting\n\n", batter)
	table := newTable(w)
	table.Header("VS", "INN", "RUNS", "BALLS", "NO", "HS", "AVG", "SR", "50", "100", "4s", "6s", "MOM")
	appendRow := func(label string, r *model.BattingRecord) {
		table.Append(
			label,
			strconv.Itoa(r.Innings),
			strconv.Itoa(r.Runs),
			strconv.Itoa(r.BallsFaced),
			strconv.Itoa(r.NotOut),
			r.HighestScore,
			stat(r.Average),
			stat(r.StrikeRate),
			strconv.Itoa(r.Fifties),
			strconv.Itoa(r.Hundreds),
			strconv.Itoa(r.Fours),
			strconv.Itoa(r.Sixes),
			strconv.Itoa(r.ManOfTheMatch),
		)
	}
	appendRow("ALL", rep.All.Record)
	for _, opp := range opponents {
		if r, ok := rep.Against[opp]; ok && !r.Empty() {
			appendRow(opp, r.Record)
		}
	}
	table.Render()
}

// PrintBowlingReport prints a bowler's career line and the split against
// each opponent they bowled to.
func PrintBowlingReport(w io.Writer, bowler string, rep model.BowlingReport, opponents []string) {
	if rep.All.Innings == 0 {
		fmt.Fprintf(w, "no bowling record for %q\n", bowler)
		return
	}
	fmt.Fprintf(w, "\n%s — bowling\n\n", bowler)
	table := newTable(w)
	table.Header("VS", "INN", "BALLS", "RUNS", "WKTS", "BEST", "ECON", "AVG", "SR", "3+W", "4s", "6s", "MOM")
	appendRow := func(label string, r model.BowlingRecord) {
		table.Append(
			label,
			strconv.Itoa(r.Innings),
			strconv.Itoa(r.Balls),
			strconv.Itoa(r.RunsConceded),
			strconv.Itoa(r.Wickets),
			figure(r.BestFigure),
			stat(r.Economy),
			stat(r.Average),
			stat(r.StrikeRate),
			strconv.Itoa(r.ThreePlus),
			strconv.Itoa(r.Fours),
			strconv.Itoa(r.Sixes),
			strconv.Itoa(r.ManOfTheMatch),
		)
	}
	appendRow("ALL", rep.All)
	for _, opp := range opponents {
		if r, ok := rep.Against[opp]; ok && r.Innings > 0 {
			appendRow(opp, r)
		}
	}
	table.Render()
}

// PrintUsers prints registered accounts without their password hashes.
func PrintUsers(w io.Writer, users []storage.User) {
	if len(users) == 0 {
		fmt.Fprintln(w, "No users registered.")
		return
	}
	table := newTable(w)
	table.Header("ID", "NAME", "EMAIL", "CREATED")
	for _, u := range users {
		table.Append(strconv.FormatInt(u.ID, 10), u.Name, u.Email, u.CreatedAt)
	}
	table.Render()
}
