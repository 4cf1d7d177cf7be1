// Package testutil builds a small hand-checked season for tests across the
// codebase.
package testutil

import (
	"testing"

	"github.com/pable/go-ipl-stats/internal/dataset"
	"github.com/pable/go-ipl-stats/internal/model"
)

// Team names used by the fixture.
const (
	MI  = "Mumbai Indians"
	CSK = "Chennai Super Kings"
	RCB = "Royal Challengers Bangalore"
)

// Player names used by the fixture.
const (
	Rohit   = "RG Sharma"
	Kishan  = "Ishan Kishan"
	Bumrah  = "JJ Bumrah"
	Dhoni   = "MS Dhoni"
	Jadeja  = "RA Jadeja"
	Chahar  = "DL Chahar"
	Kohli   = "V Kohli"
	Faf     = "F du Plessis"
	Maxwell = "GJ Maxwell"
	Karthik = "KD Karthik"
	Siraj   = "Mohammed Siraj"
)

// SeasonMatches returns five matches:
//
//	1  MI v CSK   MI won         PoM Rohit
//	2  CSK v MI   CSK won        PoM Dhoni
//	3  MI v CSK   no result
//	4  MI v RCB   MI won final   PoM Bumrah
//	5  RCB v CSK  RCB won
func SeasonMatches() []model.Match {
	return []model.Match{
		{ID: 1, Season: "2022", Team1: MI, Team2: CSK, WinningTeam: MI, MatchNumber: "1", PlayerOfMatch: Rohit},
		{ID: 2, Season: "2022", Team1: CSK, Team2: MI, WinningTeam: CSK, MatchNumber: "2", PlayerOfMatch: Dhoni},
		{ID: 3, Season: "2022", Team1: MI, Team2: CSK, MatchNumber: "3"},
		{ID: 4, Season: "2022", Team1: MI, Team2: RCB, WinningTeam: MI, MatchNumber: model.FinalMatchNumber, PlayerOfMatch: Bumrah},
		{ID: 5, Season: "2022", Team1: RCB, Team2: CSK, WinningTeam: RCB, MatchNumber: "5"},
	}
}

func ball(match int64, innings int, batting, batter, bowler string, runs int) model.Delivery {
	return model.Delivery{
		MatchID: match, Innings: innings, BattingTeam: batting,
		Batter: batter, Bowler: bowler, BatsmanRun: runs, TotalRun: runs,
	}
}

func extra(d model.Delivery, kind string, runs int) model.Delivery {
	d.ExtraType = kind
	d.ExtrasRun = runs
	d.TotalRun = d.BatsmanRun + runs
	return d
}

func out(d model.Delivery, player, kind string) model.Delivery {
	d.IsWicketDelivery = true
	d.PlayerOut = player
	d.Kind = kind
	return d
}

func ran(d model.Delivery) model.Delivery {
	d.NonBoundary = true
	return d
}

// SeasonDeliveries returns the ball-by-ball rows for SeasonMatches.
//
// Rohit: innings in matches 1, 2 and 4 (70 runs, 15 balls, out twice,
// 55* high score). The super over in match 4 is not counted.
// Bumrah: spells in matches 1, 3 and 4 (4 wickets, 15 runs, 10 balls,
// best 3/6). Siraj: 0/55 in match 4.
func SeasonDeliveries() []model.Delivery {
	var ds []model.Delivery

	// Match 1, MI bat: Rohit 15 off 5 balls against Chahar, then caught.
	ds = append(ds,
		ball(1, 1, MI, Rohit, Chahar, 4),
		ball(1, 1, MI, Rohit, Chahar, 6),
		ran(ball(1, 1, MI, Rohit, Chahar, 4)),
		ball(1, 1, MI, Rohit, Chahar, 1),
		extra(ball(1, 1, MI, Rohit, Chahar, 0), model.ExtraWides, 1),
		out(ball(1, 1, MI, Rohit, Chahar, 0), Rohit, "caught"),
	)
	// Match 1, CSK bat: Bumrah 0/9 off 4 balls.
	ds = append(ds,
		ball(1, 2, CSK, Dhoni, Bumrah, 6),
		ball(1, 2, CSK, Dhoni, Bumrah, 1),
		out(ball(1, 2, CSK, Jadeja, Bumrah, 0), Jadeja, "run out"),
		ball(1, 2, CSK, Dhoni, Bumrah, 2),
	)
	// Match 2, MI bat: Rohit run out at the non-striker's end.
	ds = append(ds,
		ball(2, 2, MI, Kishan, Jadeja, 1),
		out(ball(2, 2, MI, Kishan, Jadeja, 0), Rohit, "run out"),
	)
	// Match 3, CSK bat: Bumrah 1/0 off 1 ball.
	ds = append(ds,
		out(ball(3, 1, CSK, Dhoni, Bumrah, 0), Dhoni, "caught"),
	)
	// Match 4, MI bat: Rohit 55* off 10 balls against Siraj.
	for range 9 {
		ds = append(ds, ball(4, 1, MI, Rohit, Siraj, 6))
	}
	ds = append(ds, ball(4, 1, MI, Rohit, Siraj, 1))
	// Match 4, RCB bat: Bumrah 3/6 off 5 legal balls.
	ds = append(ds,
		out(ball(4, 2, RCB, Faf, Bumrah, 0), Faf, "bowled"),
		ball(4, 2, RCB, Kohli, Bumrah, 4),
		extra(ball(4, 2, RCB, Kohli, Bumrah, 0), model.ExtraLegByes, 1),
		extra(ball(4, 2, RCB, Kohli, Bumrah, 0), model.ExtraWides, 1),
		extra(ball(4, 2, RCB, Kohli, Bumrah, 0), model.ExtraNoBalls, 1),
		out(ball(4, 2, RCB, Maxwell, Bumrah, 0), Maxwell, "caught"),
		out(ball(4, 2, RCB, Karthik, Bumrah, 0), Karthik, "lbw"),
	)
	// Match 4 super over: ignored by every record.
	ds = append(ds,
		ball(4, 3, MI, Rohit, Siraj, 6),
		out(ball(4, 4, RCB, Kohli, Bumrah, 0), Kohli, "bowled"),
	)
	// Match 5: Kohli against CSK.
	ds = append(ds,
		ball(5, 1, RCB, Kohli, Jadeja, 4),
		ball(5, 1, RCB, Kohli, Jadeja, 1),
	)
	return ds
}

// Season returns a store over SeasonMatches and SeasonDeliveries.
func Season(t testing.TB) *dataset.Store {
	t.Helper()
	s, err := dataset.New(SeasonMatches(), SeasonDeliveries())
	if err != nil {
		t.Fatalf("build season: %v", err)
	}
	return s
}
