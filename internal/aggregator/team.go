package aggregator

import (
	"context"

	"github.com/pable/go-ipl-stats/internal/dataset"
	"github.com/pable/go-ipl-stats/internal/model"
)

// TeamsPlayed returns every team in the match table in ascending name order.
func (e *Engine) TeamsPlayed() model.TeamsPlayed {
	teams := make([]string, 0, len(e.store.Teams()))
	teams = append(teams, e.store.Teams()...)
	return model.TeamsPlayed{Count: len(teams), Teams: teams}
}

// HeadToHead returns team1's record against team2. Unknown names yield the
// invalid-team sentinel.
func (e *Engine) HeadToHead(team1, team2 string) model.H2HResult {
	if !e.store.HasTeam(team1) || !e.store.HasTeam(team2) {
		return model.InvalidH2H()
	}
	rec := headToHead(e.store.Matches(), team1, team2)
	return model.H2HResult{Record: &rec}
}

func headToHead(matches []model.Match, team1, team2 string) model.HeadToHead {
	played := dataset.FilterMatches(matches, func(m *model.Match) bool {
		return (m.Team1 == team1 && m.Team2 == team2) || (m.Team1 == team2 && m.Team2 == team1)
	})
	var rec model.HeadToHead
	rec.Played = len(played)
	for i := range played {
		switch played[i].WinningTeam {
		case team1:
			rec.Team1Won++
		case team2:
			rec.Team2Won++
		}
	}
	// Null winners and anything else (abandoned, forfeits) land in no-result.
	rec.NoResult = rec.Played - rec.Team1Won - rec.Team2Won
	return rec
}

// OverallRecord returns team's record against all opponents, including titles
// (finals won).
func (e *Engine) OverallRecord(team string) model.TeamResult {
	if !e.store.HasTeam(team) {
		return model.InvalidTeam()
	}
	rec := overallRecord(e.store.Matches(), team)
	return model.TeamResult{Record: &rec}
}

func overallRecord(matches []model.Match, team string) model.TeamRecord {
	played := dataset.FilterMatches(matches, func(m *model.Match) bool { return m.Involves(team) })
	var rec model.TeamRecord
	rec.Played = len(played)
	for i := range played {
		m := &played[i]
		switch {
		case !m.HasResult():
			rec.NoResult++
		case m.WinningTeam == team:
			rec.Won++
			if m.MatchNumber == model.FinalMatchNumber {
				rec.Titles++
			}
		}
	}
	rec.Loss = rec.Played - rec.Won - rec.NoResult
	return rec
}

// TeamFullReport returns the overall record and the head-to-head against
// every known team, the team itself included.
func (e *Engine) TeamFullReport(ctx context.Context, team string) (model.TeamReport, error) {
	against, err := fanOut(ctx, e.store.Teams(), e.opts.Parallelism, func(opponent string) model.H2HResult {
		return e.HeadToHead(team, opponent)
	})
	if err != nil {
		return model.TeamReport{}, err
	}
	return model.TeamReport{Overall: e.OverallRecord(team), Against: against}, nil
}
