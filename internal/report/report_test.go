package report

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-ipl-stats/internal/aggregator"
	"github.com/pable/go-ipl-stats/internal/model"
	"github.com/pable/go-ipl-stats/internal/storage"
	"github.com/pable/go-ipl-stats/internal/testutil"
)

func engine(t *testing.T) *aggregator.Engine {
	t.Helper()
	e, err := aggregator.New(testutil.Season(t), aggregator.Options{})
	require.NoError(t, err)
	return e
}

func TestStatCell(t *testing.T) {
	assert.Equal(t, "35.00", stat(35))
	assert.Equal(t, "466.67", stat(model.Stat(70.0/15*100)))
	assert.Equal(t, "∞", stat(model.Inf()))
	assert.Equal(t, "—", stat(model.NaN()))
	assert.Equal(t, "—", figure(model.Figure{}))
	assert.Equal(t, "3/6", figure(model.NewFigure(3, 6)))
}

func TestPrintHeadToHead(t *testing.T) {
	e := engine(t)
	var buf bytes.Buffer
	PrintHeadToHead(&buf, testutil.MI, "Kochi", e.HeadToHead(testutil.MI, "Kochi"))
	assert.Equal(t, model.InvalidTeamResponse+"\n", buf.String())

	buf.Reset()
	PrintHeadToHead(&buf, testutil.MI, testutil.CSK, e.HeadToHead(testutil.MI, testutil.CSK))
	assert.Contains(t, buf.String(), "Mumbai Indians vs Chennai Super Kings")
	assert.Contains(t, buf.String(), "PLAYED")
}

func TestPrintTeamReportSkipsUnplayed(t *testing.T) {
	e := engine(t)
	rep, err := e.TeamFullReport(context.Background(), testutil.RCB)
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintTeamReport(&buf, testutil.RCB, rep, e.Store().Teams())
	out := buf.String()
	assert.Contains(t, out, "Titles: 0")
	assert.Contains(t, out, testutil.MI)
	assert.Contains(t, out, testutil.CSK)
	// RCB never played itself, so only the header line names it.
	assert.Equal(t, 1, strings.Count(out, testutil.RCB))
}

func TestPrintPlayerReports(t *testing.T) {
	e := engine(t)
	ctx := context.Background()

	bat, err := e.BatsmanFullReport(ctx, testutil.Rohit)
	require.NoError(t, err)
	var buf bytes.Buffer
	PrintBattingReport(&buf, testutil.Rohit, bat, e.Store().Teams())
	assert.Contains(t, buf.String(), "55*")
	assert.Contains(t, buf.String(), "∞")

	bowl, err := e.BowlerFullReport(ctx, testutil.Bumrah)
	require.NoError(t, err)
	buf.Reset()
	PrintBowlingReport(&buf, testutil.Bumrah, bowl, e.Store().Teams())
	assert.Contains(t, buf.String(), "3/6")
	assert.NotContains(t, buf.String(), testutil.MI, "never bowled to own team")

	buf.Reset()
	bat, err = e.BatsmanFullReport(ctx, "Nobody")
	require.NoError(t, err)
	PrintBattingReport(&buf, "Nobody", bat, nil)
	assert.Equal(t, "no batting record for \"Nobody\"\n", buf.String())
}

func TestPrintUsers(t *testing.T) {
	var buf bytes.Buffer
	PrintUsers(&buf, nil)
	assert.Equal(t, "No users registered.\n", buf.String())

	buf.Reset()
	PrintUsers(&buf, []storage.User{{ID: 7, Name: "Ann", Email: "ann@example.com", PasswordHash: "secret-hash", CreatedAt: "2024-04-01T10:00:00Z"}})
	assert.Contains(t, buf.String(), "ann@example.com")
	assert.NotContains(t, buf.String(), "secret-hash")
}

func TestWriteJSON(t *testing.T) {
	e := engine(t)
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, e.OverallRecord("Kochi"), false))
	assert.Equal(t, "{\"response\":\"Invalid team name\"}\n", buf.String())

	bowl, err := e.BowlerFullReport(context.Background(), testutil.Bumrah)
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, WriteJSON(&buf, Keyed(testutil.Bumrah, bowl), true))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "{\n  \""+testutil.Bumrah+"\": {"), out)
	assert.Contains(t, out, `"Infinity"`)
	assert.Contains(t, out, `"NaN"`)

	// Encoding is byte-stable across calls.
	var again bytes.Buffer
	require.NoError(t, WriteJSON(&again, Keyed(testutil.Bumrah, bowl), true))
	assert.Equal(t, out, again.String())
}
