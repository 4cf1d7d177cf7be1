package aggregator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/pable/go-ipl-stats/internal/testutil"
)

func TestBowlerFullReport(t *testing.T) {
	e := newEngine(t, Options{})
	rep, err := e.BowlerFullReport(context.Background(), Bumrah)
	require.NoError(t, err)

	all := rep.All
	assert.Equal(t, 3, all.Innings)
	assert.Equal(t, 4, all.Wickets, "run out not credited, super over excluded")
	assert.Equal(t, 15, all.RunsConceded, "leg byes not charged")
	assert.Equal(t, 10, all.Balls, "wides and no-balls are not legal balls")
	assert.Equal(t, 1, all.Fours)
	assert.Equal(t, 1, all.Sixes)
	assert.Equal(t, 1, all.ThreePlus)
	assert.Equal(t, 1, all.ManOfTheMatch)
	assert.Equal(t, "3/6", all.BestFigure.String())
	assert.InDelta(t, 9.0, float64(all.Economy), 1e-9)
	assert.InDelta(t, 3.75, float64(all.Average), 1e-9)
	assert.InDelta(t, 250.0, float64(all.StrikeRate), 1e-9)

	require.Len(t, rep.Against, 3)
	csk := rep.Against[CSK]
	assert.Equal(t, 2, csk.Innings)
	assert.Equal(t, 1, csk.Wickets)
	assert.Equal(t, "1/0", csk.BestFigure.String())
	assert.InDelta(t, 10.8, float64(csk.Economy), 1e-9)
	assert.Equal(t, 0, csk.ThreePlus)

	rcb := rep.Against[RCB]
	assert.Equal(t, "3/6", rcb.BestFigure.String())
	assert.InDelta(t, 2.0, float64(rcb.Average), 1e-9)

	mi := rep.Against[MI]
	assert.Equal(t, 0, mi.Innings)
	assert.True(t, mi.Average.IsInf())
	assert.True(t, mi.StrikeRate.IsNaN())
	assert.False(t, mi.BestFigure.Valid)
	assert.Equal(t, "NaN", mi.BestFigure.String())
	assert.Zero(t, float64(mi.Economy))
}

func TestWicketlessBowler(t *testing.T) {
	e := newEngine(t, Options{})
	r := e.BowlingRecord(Siraj, e.Store().Regular())
	assert.Equal(t, 1, r.Innings)
	assert.Equal(t, 0, r.Wickets)
	assert.Equal(t, 55, r.RunsConceded)
	assert.True(t, r.Average.IsInf())
	assert.True(t, r.StrikeRate.IsNaN())
	assert.Equal(t, "0/55", r.BestFigure.String())
	assert.InDelta(t, 33.0, float64(r.Economy), 1e-9)
}

func TestBowlingIdempotent(t *testing.T) {
	e := newEngine(t, Options{Parallelism: 3})
	a, err := e.BowlerFullReport(context.Background(), Bumrah)
	require.NoError(t, err)
	b, err := e.BowlerFullReport(context.Background(), Bumrah)
	require.NoError(t, err)
	assert.Equal(t, a.All, b.All)
	assert.Equal(t, len(a.Against), len(b.Against))
}

func TestBetterSpell(t *testing.T) {
	tests := []struct {
		name string
		a, b bowlingSpell
		want bool
	}{
		{"more wickets", bowlingSpell{wickets: 3, runs: 40}, bowlingSpell{wickets: 2, runs: 10}, true},
		{"fewer runs", bowlingSpell{wickets: 2, runs: 10}, bowlingSpell{wickets: 2, runs: 11}, true},
		{"earlier on tie", bowlingSpell{wickets: 2, runs: 10, order: 0}, bowlingSpell{wickets: 2, runs: 10, order: 1}, true},
		{"worse", bowlingSpell{wickets: 1, runs: 0}, bowlingSpell{wickets: 2, runs: 50}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, betterSpell(&tt.a, &tt.b))
		})
	}
}
