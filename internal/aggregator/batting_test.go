package aggregator

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-ipl-stats/internal/model"
	. "github.com/pable/go-ipl-stats/internal/testutil"
)

func TestBatsmanFullReport(t *testing.T) {
	e := newEngine(t, Options{})
	rep, err := e.BatsmanFullReport(context.Background(), Rohit)
	require.NoError(t, err)

	require.False(t, rep.All.Empty())
	all := *rep.All.Record
	assert.Equal(t, 3, all.Innings, "run out without facing still counts")
	assert.Equal(t, 70, all.Runs, "super over runs are excluded")
	assert.Equal(t, 15, all.BallsFaced, "wides are not balls faced")
	assert.Equal(t, 1, all.Fours, "run four is not a boundary")
	assert.Equal(t, 10, all.Sixes)
	assert.Equal(t, 2, all.Dismissals)
	assert.Equal(t, 1, all.NotOut)
	assert.Equal(t, 1, all.Fifties)
	assert.Equal(t, 0, all.Hundreds)
	assert.Equal(t, 1, all.ManOfTheMatch, "counted once per match")
	assert.Equal(t, "55*", all.HighestScore)
	assert.InDelta(t, 35.0, float64(all.Average), 1e-9)
	assert.InDelta(t, 466.67, float64(all.StrikeRate), 0.01)

	require.Len(t, rep.Against, 3)
	csk := rep.Against[CSK].Record
	require.NotNil(t, csk)
	assert.Equal(t, 2, csk.Innings)
	assert.Equal(t, 15, csk.Runs)
	assert.Equal(t, 0, csk.NotOut)
	assert.Equal(t, "15", csk.HighestScore)
	assert.InDelta(t, 7.5, float64(csk.Average), 1e-9)
	assert.InDelta(t, 300.0, float64(csk.StrikeRate), 1e-9)

	rcb := rep.Against[RCB].Record
	require.NotNil(t, rcb)
	assert.True(t, rcb.Average.IsInf(), "never dismissed")
	assert.Equal(t, rcb.Innings, rcb.NotOut)
	assert.Equal(t, "55*", rcb.HighestScore)
	assert.Equal(t, 0, rcb.ManOfTheMatch)

	assert.True(t, rep.Against[MI].Empty(), "never faced his own team")
}

func TestBattingEmptyMarker(t *testing.T) {
	e := newEngine(t, Options{})
	rep, err := e.BatsmanFullReport(context.Background(), "Nobody")
	require.NoError(t, err)
	assert.True(t, rep.All.Empty())
	for _, r := range rep.Against {
		assert.True(t, r.Empty())
	}

	b, err := json.Marshal(rep.Against)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Chennai Super Kings":null,"Mumbai Indians":null,"Royal Challengers Bangalore":null}`, string(b))
}

func TestBattingBlankNameHasNoRecord(t *testing.T) {
	e := newEngine(t, Options{})
	rep, err := e.BatsmanFullReport(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, rep.All.Empty())
	for team, r := range rep.Against {
		assert.True(t, r.Empty(), team)
	}
	assert.True(t, e.BattingRecord("", e.Store().Regular()).Empty())
}

func TestBattingPerInningsModes(t *testing.T) {
	e := newEngine(t, Options{StrikeRate: StrikeRatePerInnings, Average: AveragePerInnings})
	r := e.BattingVsTeam(Rohit, RCB, e.Store().Regular())
	require.False(t, r.Empty())
	assert.InDelta(t, 55.0, float64(r.Record.Average), 1e-9, "per innings average is finite even when not out")
	assert.InDelta(t, 5500.0, float64(r.Record.StrikeRate), 1e-9)
}

func TestBattingMilestonesAndHighest(t *testing.T) {
	e := newEngine(t, Options{})
	var rows []model.Delivery
	add := func(match int64, runs ...int) {
		for _, r := range runs {
			rows = append(rows, model.Delivery{MatchID: match, Innings: 1, Batter: "X", Bowler: "Y", BatsmanRun: r, TotalRun: r})
		}
	}
	century := make([]int, 17)
	for i := range century {
		century[i] = 6
	}
	add(1, century...) // 102
	add(2, 6, 6, 6, 6, 6, 6, 6, 6, 2)
	rows = append(rows, model.Delivery{MatchID: 2, Innings: 1, Batter: "X", Bowler: "Y", IsWicketDelivery: true, PlayerOut: "X", Kind: "bowled"})
	add(3, century...) // 102 not out, ties match 1

	r := e.BattingRecord("X", rows)
	require.False(t, r.Empty())
	assert.Equal(t, 2, r.Record.Hundreds)
	assert.Equal(t, 1, r.Record.Fifties)
	assert.Equal(t, "102*", r.Record.HighestScore)
	assert.Equal(t, 1, r.Record.Dismissals)
}

func TestBetterInnings(t *testing.T) {
	a := &battingInnings{runs: 40, out: true, order: 0}
	b := &battingInnings{runs: 40, out: false, order: 1}
	c := &battingInnings{runs: 40, out: false, order: 2}
	assert.True(t, betterInnings(b, a), "not out wins a tie")
	assert.True(t, betterInnings(b, c), "earlier wins a full tie")
	assert.False(t, betterInnings(a, &battingInnings{runs: 41, out: true}))
	assert.Equal(t, "40", formatScore(a))
	assert.Equal(t, "40*", formatScore(b))
}
