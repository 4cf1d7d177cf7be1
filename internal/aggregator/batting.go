package aggregator

import (
	"context"
	"strconv"

	"github.com/pable/go-ipl-stats/internal/dataset"
	"github.com/pable/go-ipl-stats/internal/model"
)

// battingInnings is one batter's contribution to a single match.
type battingInnings struct {
	runs  int
	out   bool
	order int // first-seen position, for deterministic tie-breaks
}

// BattingRecord computes batter's record over rows. A batter's rows are the
// balls they faced plus any delivery on which they were dismissed (run outs
// at the non-striker's end). When there are none, the empty marker is
// returned rather than a zero record.
func (e *Engine) BattingRecord(batter string, rows []model.Delivery) model.BattingResult {
	if batter == "" {
		return model.NoData()
	}
	var (
		rec     model.BattingRecord
		innings = make(map[int64]*battingInnings)
		momSeen = make(map[int64]struct{})
		anyRow  bool
	)

	inningsFor := func(id int64) *battingInnings {
		inn, ok := innings[id]
		if !ok {
			inn = &battingInnings{order: len(innings)}
			innings[id] = inn
		}
		return inn
	}

	for i := range rows {
		d := &rows[i]
		faced := d.Batter == batter
		dismissed := d.PlayerOut != "" && d.PlayerOut == batter
		if !faced && !dismissed {
			continue
		}
		anyRow = true
		inn := inningsFor(d.MatchID)

		if faced {
			rec.Runs += d.BatsmanRun
			inn.runs += d.BatsmanRun
			if d.IsFour() {
				rec.Fours++
			}
			if d.IsSix() {
				rec.Sixes++
			}
			if !d.IsWide() {
				rec.BallsFaced++
			}
		}
		if dismissed {
			inn.out = true
		}
		if d.PlayerOfMatch == batter {
			momSeen[d.MatchID] = struct{}{}
		}
	}
	if !anyRow {
		return model.NoData()
	}

	rec.Innings = len(innings)
	var best *battingInnings
	for _, inn := range innings {
		if inn.out {
			rec.Dismissals++
		}
		switch {
		case inn.runs >= 100:
			rec.Hundreds++
		case inn.runs >= 50:
			rec.Fifties++
		}
		if best == nil || betterInnings(inn, best) {
			best = inn
		}
	}
	rec.NotOut = rec.Innings - rec.Dismissals
	rec.ManOfTheMatch = len(momSeen)
	rec.HighestScore = formatScore(best)
	rec.Average = e.battingAverage(rec)
	rec.StrikeRate = e.battingStrikeRate(rec)
	return model.BattingResult{Record: &rec}
}

// betterInnings orders innings by runs, then not-out ahead of out, then
// earliest first.
func betterInnings(a, b *battingInnings) bool {
	if a.runs != b.runs {
		return a.runs > b.runs
	}
	if a.out != b.out {
		return !a.out
	}
	return a.order < b.order
}

func formatScore(inn *battingInnings) string {
	s := strconv.Itoa(inn.runs)
	if !inn.out {
		s += "*"
	}
	return s
}

func (e *Engine) battingAverage(rec model.BattingRecord) model.Stat {
	if e.opts.Average == AveragePerInnings {
		if rec.Innings == 0 {
			return model.Inf()
		}
		return model.Stat(float64(rec.Runs) / float64(rec.Innings))
	}
	if rec.Dismissals == 0 {
		return model.Inf()
	}
	return model.Stat(float64(rec.Runs) / float64(rec.Dismissals))
}

func (e *Engine) battingStrikeRate(rec model.BattingRecord) model.Stat {
	if e.opts.StrikeRate == StrikeRatePerInnings {
		if rec.Innings == 0 {
			return 0
		}
		return model.Stat(float64(rec.Runs) / float64(rec.Innings) * 100)
	}
	if rec.BallsFaced == 0 {
		return 0
	}
	return model.Stat(float64(rec.Runs) / float64(rec.BallsFaced) * 100)
}

// BattingVsTeam narrows rows to deliveries bowled by team, then computes the
// batting record.
func (e *Engine) BattingVsTeam(batter, team string, rows []model.Delivery) model.BattingResult {
	return e.BattingRecord(batter, dataset.Filter(rows, func(d *model.Delivery) bool {
		return d.BowlingTeam == team
	}))
}

// BatsmanFullReport returns batter's record over all regular-innings
// deliveries and against each known team.
func (e *Engine) BatsmanFullReport(ctx context.Context, batter string) (model.BattingReport, error) {
	rows := dataset.Filter(e.store.Regular(), func(d *model.Delivery) bool {
		return d.Batter == batter || (d.PlayerOut != "" && d.PlayerOut == batter)
	})
	against, err := fanOut(ctx, e.store.Teams(), e.opts.Parallelism, func(team string) model.BattingResult {
		return e.BattingVsTeam(batter, team, rows)
	})
	if err != nil {
		return model.BattingReport{}, err
	}
	return model.BattingReport{All: e.BattingRecord(batter, rows), Against: against}, nil
}
