package aggregator

import (
	"context"

	"github.com/pable/go-ipl-stats/internal/dataset"
	"github.com/pable/go-ipl-stats/internal/model"
)

// bowlingSpell is one bowler's figures in a single match.
type bowlingSpell struct {
	wickets int
	runs    int
	order   int
}

// BowlingRecord computes bowler's record over rows. Unlike batting there is
// no empty marker: a bowler with no deliveries gets zero counts, an infinite
// average and NaN strike rate and best figure.
func (e *Engine) BowlingRecord(bowler string, rows []model.Delivery) model.BowlingRecord {
	var (
		rec     model.BowlingRecord
		spells  = make(map[int64]*bowlingSpell)
		momSeen = make(map[int64]struct{})
	)

	for i := range rows {
		d := &rows[i]
		if d.Bowler != bowler {
			continue
		}
		sp, ok := spells[d.MatchID]
		if !ok {
			sp = &bowlingSpell{order: len(spells)}
			spells[d.MatchID] = sp
		}
		sp.wickets += d.IsBowlerWicket
		sp.runs += d.BowlerRun

		rec.RunsConceded += d.BowlerRun
		rec.Wickets += d.IsBowlerWicket
		if d.CountsAsBowled() {
			rec.Balls++
		}
		if d.IsFour() {
			rec.Fours++
		}
		if d.IsSix() {
			rec.Sixes++
		}
		if d.PlayerOfMatch == bowler {
			momSeen[d.MatchID] = struct{}{}
		}
	}

	rec.Innings = len(spells)
	rec.ManOfTheMatch = len(momSeen)

	var best *bowlingSpell
	for _, sp := range spells {
		if sp.wickets >= 3 {
			rec.ThreePlus++
		}
		if best == nil || betterSpell(sp, best) {
			best = sp
		}
	}
	if best != nil {
		rec.BestFigure = model.NewFigure(best.wickets, best.runs)
	}

	if rec.Balls > 0 {
		rec.Economy = model.Stat(float64(rec.RunsConceded) / float64(rec.Balls) * 6)
	}
	if rec.Wickets > 0 {
		rec.Average = model.Stat(float64(rec.RunsConceded) / float64(rec.Wickets))
		rec.StrikeRate = model.Stat(float64(rec.Balls) / float64(rec.Wickets) * 100)
	} else {
		rec.Average = model.Inf()
		rec.StrikeRate = model.NaN()
	}
	return rec
}

// betterSpell orders spells by most wickets, then fewest runs, then earliest.
func betterSpell(a, b *bowlingSpell) bool {
	if a.wickets != b.wickets {
		return a.wickets > b.wickets
	}
	if a.runs != b.runs {
		return a.runs < b.runs
	}
	return a.order < b.order
}

// BowlingVsTeam narrows rows to deliveries where team was batting, then
// computes the bowling record.
func (e *Engine) BowlingVsTeam(bowler, team string, rows []model.Delivery) model.BowlingRecord {
	return e.BowlingRecord(bowler, dataset.Filter(rows, func(d *model.Delivery) bool {
		return d.BattingTeam == team
	}))
}

// BowlerFullReport returns bowler's record over all regular-innings
// deliveries and against each known team.
func (e *Engine) BowlerFullReport(ctx context.Context, bowler string) (model.BowlingReport, error) {
	rows := dataset.Filter(e.store.Regular(), func(d *model.Delivery) bool {
		return d.Bowler == bowler
	})
	against, err := fanOut(ctx, e.store.Teams(), e.opts.Parallelism, func(team string) model.BowlingRecord {
		return e.BowlingVsTeam(bowler, team, rows)
	})
	if err != nil {
		return model.BowlingReport{}, err
	}
	return model.BowlingReport{All: e.BowlingRecord(bowler, rows), Against: against}, nil
}
