package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// JSON tags used for non-finite values. JSON has no literal for them, so they
// cross the wire as strings and are turned back into floats on decode.
const (
	tagInf    = "Infinity"
	tagNegInf = "-Infinity"
	tagNaN    = "NaN"
)

// Stat is a derived ratio (average, strike rate, economy). It may be +Inf or
// NaN when the denominator is zero.
type Stat float64

// Inf returns the +Inf stat used for undefined averages.
func Inf() Stat { return Stat(math.Inf(1)) }

// NaN returns the not-a-number stat used for undefined strike rates.
func NaN() Stat { return Stat(math.NaN()) }

// IsInf reports whether s is +Inf.
func (s Stat) IsInf() bool { return math.IsInf(float64(s), 1) }

// IsNaN reports whether s is NaN.
func (s Stat) IsNaN() bool { return math.IsNaN(float64(s)) }

func (s Stat) String() string {
	f := float64(s)
	switch {
	case math.IsNaN(f):
		return tagNaN
	case math.IsInf(f, 1):
		return tagInf
	case math.IsInf(f, -1):
		return tagNegInf
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// MarshalJSON encodes finite values as numbers and non-finite values as tags.
func (s Stat) MarshalJSON() ([]byte, error) {
	f := float64(s)
	switch {
	case math.IsNaN(f):
		return []byte(`"` + tagNaN + `"`), nil
	case math.IsInf(f, 1):
		return []byte(`"` + tagInf + `"`), nil
	case math.IsInf(f, -1):
		return []byte(`"` + tagNegInf + `"`), nil
	}
	return json.Marshal(f)
}

// UnmarshalJSON accepts a number or one of the non-finite tags.
func (s *Stat) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var tag string
		if err := json.Unmarshal(b, &tag); err != nil {
			return err
		}
		switch tag {
		case tagInf, "inf", "+Infinity":
			*s = Inf()
		case tagNegInf, "-inf":
			*s = Stat(math.Inf(-1))
		case tagNaN, "nan":
			*s = NaN()
		default:
			return fmt.Errorf("unknown stat tag %q", tag)
		}
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*s = Stat(f)
	return nil
}

// Figure is a "wickets/runs" bowling figure. The zero value is the NaN marker
// for a bowler with no matches.
type Figure struct {
	Wickets int
	Runs    int
	Valid   bool
}

// NewFigure returns a valid figure.
func NewFigure(wickets, runs int) Figure {
	return Figure{Wickets: wickets, Runs: runs, Valid: true}
}

func (f Figure) String() string {
	if !f.Valid {
		return tagNaN
	}
	return fmt.Sprintf("%d/%d", f.Wickets, f.Runs)
}

// MarshalJSON encodes the figure as "w/r", or as the NaN tag when undefined.
func (f Figure) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// UnmarshalJSON decodes "w/r" or the NaN tag.
func (f *Figure) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == tagNaN {
		*f = Figure{}
		return nil
	}
	w, r, ok := strings.Cut(s, "/")
	if !ok {
		return fmt.Errorf("malformed figure %q", s)
	}
	wickets, err := strconv.Atoi(w)
	if err != nil {
		return fmt.Errorf("malformed figure %q: %w", s, err)
	}
	runs, err := strconv.Atoi(r)
	if err != nil {
		return fmt.Errorf("malformed figure %q: %w", s, err)
	}
	*f = NewFigure(wickets, runs)
	return nil
}

// ---- Sentinel-carrying results ----

// InvalidTeamResponse is returned in place of a record for unknown team names.
const InvalidTeamResponse = "Invalid team name"

// Invalid is the wire shape of the unknown-team sentinel.
type Invalid struct {
	Response string `json:"response"`
}

var invalidTeam = Invalid{Response: InvalidTeamResponse}

func isInvalid(b []byte) bool {
	var probe struct {
		Response *string `json:"response"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return false
	}
	return probe.Response != nil
}

// H2HResult holds a head-to-head record, or nothing when a team name was invalid.
type H2HResult struct {
	Record *HeadToHead
}

// InvalidH2H returns the unknown-team sentinel.
func InvalidH2H() H2HResult { return H2HResult{} }

// Valid reports whether a record was computed.
func (r H2HResult) Valid() bool { return r.Record != nil }

func (r H2HResult) MarshalJSON() ([]byte, error) {
	if r.Record == nil {
		return json.Marshal(invalidTeam)
	}
	return json.Marshal(r.Record)
}

func (r *H2HResult) UnmarshalJSON(b []byte) error {
	if isInvalid(b) {
		r.Record = nil
		return nil
	}
	r.Record = new(HeadToHead)
	return json.Unmarshal(b, r.Record)
}

// TeamResult holds a team's overall record, or nothing when the name was invalid.
type TeamResult struct {
	Record *TeamRecord
}

// InvalidTeam returns the unknown-team sentinel.
func InvalidTeam() TeamResult { return TeamResult{} }

// Valid reports whether a record was computed.
func (r TeamResult) Valid() bool { return r.Record != nil }

func (r TeamResult) MarshalJSON() ([]byte, error) {
	if r.Record == nil {
		return json.Marshal(invalidTeam)
	}
	return json.Marshal(r.Record)
}

func (r *TeamResult) UnmarshalJSON(b []byte) error {
	if isInvalid(b) {
		r.Record = nil
		return nil
	}
	r.Record = new(TeamRecord)
	return json.Unmarshal(b, r.Record)
}

// BattingResult holds a batting record, or nothing when no deliveries matched.
// The empty marker is distinct from a record with zero runs.
type BattingResult struct {
	Record *BattingRecord
}

// NoData returns the empty marker.
func NoData() BattingResult { return BattingResult{} }

// Empty reports whether no deliveries matched.
func (r BattingResult) Empty() bool { return r.Record == nil }

func (r BattingResult) MarshalJSON() ([]byte, error) {
	if r.Record == nil {
		return []byte("null"), nil
	}
	return json.Marshal(r.Record)
}

func (r *BattingResult) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		r.Record = nil
		return nil
	}
	r.Record = new(BattingRecord)
	return json.Unmarshal(b, r.Record)
}
