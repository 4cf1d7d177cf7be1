package model

// ---- Raw rows loaded from the dataset ----

// Match is one row of the match table.
type Match struct {
	ID            int64
	City          string
	Date          string
	Season        string
	MatchNumber   string // "Final" marks a championship match
	Team1         string
	Team2         string
	Venue         string
	WinningTeam   string // empty for no-result matches
	PlayerOfMatch string
}

// FinalMatchNumber is the MatchNumber value of a championship match.
const FinalMatchNumber = "Final"

// HasResult reports whether the match recorded a winner.
func (m *Match) HasResult() bool {
	return m.WinningTeam != ""
}

// Involves reports whether team played in the match.
func (m *Match) Involves(team string) bool {
	return m.Team1 == team || m.Team2 == team
}

// Extra types that appear in the extra_type column.
const (
	ExtraNone    = ""
	ExtraWides   = "wides"
	ExtraNoBalls = "noballs"
	ExtraByes    = "byes"
	ExtraLegByes = "legbyes"
	ExtraPenalty = "penalty"
)

// Delivery is one ball of the delivery table. The fields after BattingTeam
// are derived when the dataset is built and are zero on freshly parsed rows.
type Delivery struct {
	MatchID          int64
	Innings          int // 1 or 2; higher values are super overs
	Over             int
	Ball             int
	Batter           string
	Bowler           string
	NonStriker       string
	ExtraType        string // one of the Extra* constants
	BatsmanRun       int
	ExtrasRun        int
	TotalRun         int
	NonBoundary      bool // runs were completed by running, not by reaching the rope
	IsWicketDelivery bool
	PlayerOut        string // empty when nobody was dismissed
	Kind             string // kind of dismissal, empty when none
	BattingTeam      string

	// Derived view.
	BowlingTeam    string
	BowlerRun      int // runs charged to the bowler
	IsBowlerWicket int // 1 when the dismissal is credited to the bowler
	PlayerOfMatch  string
}

// IsSuperOver reports whether the delivery belongs to a tie-breaker innings.
func (d *Delivery) IsSuperOver() bool {
	return d.Innings != 1 && d.Innings != 2
}

// IsWide reports whether the delivery was called wide.
func (d *Delivery) IsWide() bool {
	return d.ExtraType == ExtraWides
}

// CountsAsBowled reports whether the delivery counts towards the bowler's over
// (wides and no-balls are re-bowled).
func (d *Delivery) CountsAsBowled() bool {
	return d.ExtraType != ExtraWides && d.ExtraType != ExtraNoBalls
}

// IsFour reports whether the batter hit a boundary four.
func (d *Delivery) IsFour() bool {
	return d.BatsmanRun == 4 && !d.NonBoundary
}

// IsSix reports whether the batter hit a six.
func (d *Delivery) IsSix() bool {
	return d.BatsmanRun == 6 && !d.NonBoundary
}

// ---- Aggregated records ----

// TeamsPlayed lists every franchise that appears in the match table.
type TeamsPlayed struct {
	Count int      `json:"total_number_of_teams"`
	Teams []string `json:"teams"`
}

// HeadToHead is the record of Team1 against Team2.
type HeadToHead struct {
	Played   int `json:"total_matches_played"`
	Team1Won int `json:"team1_won"`
	Team2Won int `json:"team2_won"`
	NoResult int `json:"no_result"`
}

// Swap returns the same record seen from the other side.
func (h HeadToHead) Swap() HeadToHead {
	h.Team1Won, h.Team2Won = h.Team2Won, h.Team1Won
	return h
}

// TeamRecord is a team's record against every opponent combined.
type TeamRecord struct {
	Played   int `json:"matchesplayed"`
	Won      int `json:"won"`
	Loss     int `json:"loss"`
	NoResult int `json:"noResult"`
	Titles   int `json:"title"`
}

// WinPercent returns won/played*100, or 0 for a team with no matches.
func (r *TeamRecord) WinPercent() float64 {
	if r.Played == 0 {
		return 0
	}
	return float64(r.Won) / float64(r.Played) * 100
}

// TeamReport is the overall record plus the head-to-head against each known team.
type TeamReport struct {
	Overall TeamResult           `json:"overall"`
	Against map[string]H2HResult `json:"against"`
}

// BattingRecord summarises a batter's innings over a set of deliveries.
type BattingRecord struct {
	Innings       int    `json:"innings"`
	Runs          int    `json:"runs"`
	Fours         int    `json:"fours"`
	Sixes         int    `json:"sixes"`
	Average       Stat   `json:"avg"`
	StrikeRate    Stat   `json:"strike_rate"`
	Fifties       int    `json:"fifties"`
	Hundreds      int    `json:"hundreds"`
	HighestScore  string `json:"highest_score"`
	NotOut        int    `json:"not_out"`
	ManOfTheMatch int    `json:"man_of_the_match"`
	Dismissals    int    `json:"out"`
	BallsFaced    int    `json:"balls"`
}

// BattingReport is a batter's career record plus the record against each known team.
type BattingReport struct {
	All     BattingResult            `json:"all"`
	Against map[string]BattingResult `json:"against"`
}

// BowlingRecord summarises a bowler's spells over a set of deliveries.
type BowlingRecord struct {
	Innings       int    `json:"innings"`
	Wickets       int    `json:"wicket"`
	Economy       Stat   `json:"economy"`
	Average       Stat   `json:"average"`
	StrikeRate    Stat   `json:"strike_rate"`
	Fours         int    `json:"fours"`
	Sixes         int    `json:"sixes"`
	BestFigure    Figure `json:"best_figure"`
	ThreePlus     int    `json:"3+W"`
	ManOfTheMatch int    `json:"man_of_the_match"`
	Balls         int    `json:"balls"`
	RunsConceded  int    `json:"runs"`
}

// BowlingReport is a bowler's career record plus the record against each known team.
type BowlingReport struct {
	All     BowlingRecord            `json:"all"`
	Against map[string]BowlingRecord `json:"against"`
}
