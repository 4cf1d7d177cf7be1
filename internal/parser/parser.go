package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pable/go-ipl-stats/internal/model"
)

// Required column sets. A source missing any of these is rejected.
var (
	matchColumns    = []string{"ID", "Team1", "Team2", "WinningTeam", "MatchNumber"}
	deliveryColumns = []string{
		"ID", "innings", "batter", "bowler", "batsman_run", "total_run", "extra_type",
		"non_boundary", "isWicketDelivery", "player_out", "kind", "BattingTeam",
	}
)

// ErrMissingColumn is returned when a source lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// header maps column names to their index in a record.
type header map[string]int

func readHeader(r *csv.Reader, required []string) (header, error) {
	names, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty source: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	h := make(header, len(names))
	for i, n := range names {
		n = strings.TrimSpace(strings.TrimPrefix(n, "\ufeff"))
		h[n] = i
	}
	for _, col := range required {
		if _, ok := h[col]; !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, col)
		}
	}
	return h, nil
}

// str returns the trimmed cell for col, or "" for absent columns and null tokens.
func (h header) str(rec []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(rec) {
		return ""
	}
	v := strings.TrimSpace(rec[i])
	if isNull(v) {
		return ""
	}
	return v
}

func (h header) intCell(rec []string, col string) (int, error) {
	v := h.str(rec, col)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err == nil {
		return n, nil
	}
	// Some exports write integral columns as floats ("4.0").
	f, ferr := strconv.ParseFloat(v, 64)
	if ferr != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("column %s: invalid integer %q", col, v)
	}
	return int(f), nil
}

func (h header) flag(rec []string, col string) (bool, error) {
	switch strings.ToLower(h.str(rec, col)) {
	case "", "0", "false", "0.0":
		return false, nil
	case "1", "true", "1.0":
		return true, nil
	}
	return false, fmt.Errorf("column %s: invalid flag %q", col, h.str(rec, col))
}

func isNull(v string) bool {
	switch v {
	case "", "NA", "nan", "NaN", "None", "null":
		return true
	}
	return false
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	cr.FieldsPerRecord = -1
	return cr
}

// ReadMatches parses the match table.
func ReadMatches(r io.Reader) ([]model.Match, error) {
	cr := newReader(r)
	h, err := readHeader(cr, matchColumns)
	if err != nil {
		return nil, fmt.Errorf("match table: %w", err)
	}

	var out []model.Match
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("match table line %d: %w", line, err)
		}
		idStr := h.str(rec, "ID")
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("match table line %d: invalid ID %q", line, idStr)
		}
		m := model.Match{
			ID:            id,
			City:          h.str(rec, "City"),
			Date:          h.str(rec, "Date"),
			Season:        h.str(rec, "Season"),
			MatchNumber:   h.str(rec, "MatchNumber"),
			Team1:         h.str(rec, "Team1"),
			Team2:         h.str(rec, "Team2"),
			Venue:         h.str(rec, "Venue"),
			WinningTeam:   h.str(rec, "WinningTeam"),
			PlayerOfMatch: h.str(rec, "Player_of_Match"),
		}
		if m.Team1 == "" || m.Team2 == "" {
			return nil, fmt.Errorf("match table line %d: match %d has an empty team name", line, id)
		}
		out = append(out, m)
	}
	return out, nil
}

// ReadDeliveries parses the ball-by-ball table. Derived columns are left zero.
func ReadDeliveries(r io.Reader) ([]model.Delivery, error) {
	cr := newReader(r)
	h, err := readHeader(cr, deliveryColumns)
	if err != nil {
		return nil, fmt.Errorf("delivery table: %w", err)
	}

	var out []model.Delivery
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("delivery table line %d: %w", line, err)
		}
		d, err := parseDelivery(h, rec)
		if err != nil {
			return nil, fmt.Errorf("delivery table line %d: %w", line, err)
		}
		out = append(out, d)
	}
	return out, nil
}

func parseDelivery(h header, rec []string) (model.Delivery, error) {
	var (
		d   model.Delivery
		err error
	)
	idStr := h.str(rec, "ID")
	if d.MatchID, err = strconv.ParseInt(idStr, 10, 64); err != nil {
		return d, fmt.Errorf("invalid ID %q", idStr)
	}
	ints := []struct {
		col string
		dst *int
	}{
		{"innings", &d.Innings},
		{"overs", &d.Over},
		{"ballnumber", &d.Ball},
		{"batsman_run", &d.BatsmanRun},
		{"extras_run", &d.ExtrasRun},
		{"total_run", &d.TotalRun},
	}
	for _, f := range ints {
		if *f.dst, err = h.intCell(rec, f.col); err != nil {
			return d, err
		}
	}
	if d.NonBoundary, err = h.flag(rec, "non_boundary"); err != nil {
		return d, err
	}
	if d.IsWicketDelivery, err = h.flag(rec, "isWicketDelivery"); err != nil {
		return d, err
	}
	d.Batter = h.str(rec, "batter")
	d.Bowler = h.str(rec, "bowler")
	d.NonStriker = h.str(rec, "non-striker")
	d.ExtraType = h.str(rec, "extra_type")
	d.PlayerOut = h.str(rec, "player_out")
	d.Kind = h.str(rec, "kind")
	d.BattingTeam = h.str(rec, "BattingTeam")
	return d, nil
}

// ParseMatchesFile reads the match table at path.
func ParseMatchesFile(path string) ([]model.Match, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open matches: %w", err)
	}
	defer f.Close()
	return ReadMatches(f)
}

// ParseDeliveriesFile reads the delivery table at path.
func ParseDeliveriesFile(path string) ([]model.Delivery, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open deliveries: %w", err)
	}
	defer f.Close()
	return ReadDeliveries(f)
}
