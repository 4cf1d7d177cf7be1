package parser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-ipl-stats/internal/model"
)

const matchesCSV = `ID,City,Date,Season,MatchNumber,Team1,Team2,Venue,TossWinner,TossDecision,SuperOver,WinningTeam,WonBy,Margin,method,Player_of_Match
1312200,Ahmedabad,2022-05-29,2022,Final,Rajasthan Royals,Gujarat Titans,"Narendra Modi Stadium, Ahmedabad",Rajasthan Royals,bat,N,Gujarat Titans,Wickets,7,NA,HH Pandya
1312199,Ahmedabad,2022-05-27,2022,Qualifier 2,Royal Challengers Bangalore,Rajasthan Royals,"Narendra Modi Stadium, Ahmedabad",Rajasthan Royals,field,N,Rajasthan Royals,Wickets,7,NA,JC Buttler
1178424,Bengaluru,2019-04-30,2019,49,Royal Challengers Bangalore,Rajasthan Royals,M.Chinnaswamy Stadium,Rajasthan Royals,field,N,NA,NoResults,NA,NA,NA
`

const deliveriesCSV = `ID,innings,overs,ballnumber,batter,bowler,non-striker,extra_type,batsman_run,extras_run,total_run,non_boundary,isWicketDelivery,player_out,kind,fielders_involved,BattingTeam
1312200,1,0,1,YBK Jaiswal,Mohammed Shami,JC Buttler,NA,0,0,0,0,0,NA,NA,NA,Rajasthan Royals
1312200,1,0,2,YBK Jaiswal,Mohammed Shami,JC Buttler,legbyes,0,1,1,0,0,NA,NA,NA,Rajasthan Royals
1312200,1,0,3,JC Buttler,Mohammed Shami,YBK Jaiswal,NA,4,0,4,0,0,NA,NA,NA,Rajasthan Royals
1312200,1,5,1,JC Buttler,HH Pandya,YBK Jaiswal,NA,0,0,0,0,1,JC Buttler,caught,WP Saha,Rajasthan Royals
`

func TestReadMatches(t *testing.T) {
	matches, err := ReadMatches(strings.NewReader(matchesCSV))
	require.NoError(t, err)
	require.Len(t, matches, 3)

	final := matches[0]
	assert.Equal(t, int64(1312200), final.ID)
	assert.Equal(t, model.FinalMatchNumber, final.MatchNumber)
	assert.Equal(t, "Narendra Modi Stadium, Ahmedabad", final.Venue)
	assert.Equal(t, "Gujarat Titans", final.WinningTeam)
	assert.Equal(t, "HH Pandya", final.PlayerOfMatch)

	abandoned := matches[2]
	assert.False(t, abandoned.HasResult(), "NA winner should parse as no result")
	assert.Empty(t, abandoned.PlayerOfMatch)
}

func TestReadDeliveries(t *testing.T) {
	deliveries, err := ReadDeliveries(strings.NewReader(deliveriesCSV))
	require.NoError(t, err)
	require.Len(t, deliveries, 4)

	lb := deliveries[1]
	assert.Equal(t, model.ExtraLegByes, lb.ExtraType)
	assert.Equal(t, 1, lb.TotalRun)
	assert.Equal(t, 1, lb.ExtrasRun)

	assert.Equal(t, model.ExtraNone, deliveries[0].ExtraType)
	assert.Equal(t, 4, deliveries[2].BatsmanRun)

	out := deliveries[3]
	assert.True(t, out.IsWicketDelivery)
	assert.Equal(t, "JC Buttler", out.PlayerOut)
	assert.Equal(t, "caught", out.Kind)
	assert.Equal(t, 5, out.Over)
	assert.Equal(t, "YBK Jaiswal", out.NonStriker)
	assert.Empty(t, out.BowlingTeam, "derived columns are filled by the dataset, not the parser")
}

func TestMissingColumnIsRejected(t *testing.T) {
	_, err := ReadMatches(strings.NewReader("ID,Team1,Team2,MatchNumber\n1,A,B,1\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
	assert.Contains(t, err.Error(), "WinningTeam")

	_, err = ReadDeliveries(strings.NewReader("ID,innings,batter\n1,1,X\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
}

func TestMalformedRows(t *testing.T) {
	_, err := ReadMatches(strings.NewReader("ID,Team1,Team2,WinningTeam,MatchNumber\nabc,A,B,A,1\n"))
	assert.ErrorContains(t, err, "invalid ID")

	bad := strings.Replace(deliveriesCSV, "1312200,1,0,1,YBK", "1312200,one,0,1,YBK", 1)
	_, err = ReadDeliveries(strings.NewReader(bad))
	assert.ErrorContains(t, err, "innings")

	_, err = ReadMatches(strings.NewReader(""))
	assert.ErrorContains(t, err, "no header")
}

func TestFloatFormattedIntegers(t *testing.T) {
	csv := "ID,innings,batter,bowler,batsman_run,total_run,extra_type,non_boundary,isWicketDelivery,player_out,kind,BattingTeam\n" +
		"7,1.0,A,B,6.0,6.0,,0.0,0,,,X\n"
	deliveries, err := ReadDeliveries(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, deliveries, 1)
	assert.Equal(t, 6, deliveries[0].BatsmanRun)
	assert.Equal(t, 1, deliveries[0].Innings)
	assert.True(t, deliveries[0].IsSix())
}

func TestParseFiles(t *testing.T) {
	dir := t.TempDir()
	mp := filepath.Join(dir, "matches.csv")
	dp := filepath.Join(dir, "balls.csv")
	require.NoError(t, os.WriteFile(mp, []byte(matchesCSV), 0o644))
	require.NoError(t, os.WriteFile(dp, []byte(deliveriesCSV), 0o644))

	matches, err := ParseMatchesFile(mp)
	require.NoError(t, err)
	assert.Len(t, matches, 3)

	deliveries, err := ParseDeliveriesFile(dp)
	require.NoError(t, err)
	assert.Len(t, deliveries, 4)

	_, err = ParseMatchesFile(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}
