// Package dataset builds the immutable match and delivery tables that every
// statistic is computed from.
package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/pable/go-ipl-stats/internal/model"
	"github.com/pable/go-ipl-stats/internal/parser"
)

// Dismissal kinds credited to the bowler.
var bowlerWicketKinds = map[string]struct{}{
	"caught":            {},
	"caught and bowled": {},
	"bowled":            {},
	"stumped":           {},
	"lbw":               {},
	"hit wicket":        {},
}

// Store holds the match table, the joined delivery view and the sorted team
// set. It is never modified after New returns, so it is safe to share between
// goroutines without locking. Slices returned by accessors must not be mutated.
type Store struct {
	matches    []model.Match
	byID       map[int64]int
	deliveries []model.Delivery
	regular    []model.Delivery
	teams      []string
	teamSet    map[string]struct{}
	dropped    int
}

// New joins deliveries to their match and computes the derived columns.
// Deliveries whose match ID is not in matches are dropped.
func New(matches []model.Match, deliveries []model.Delivery) (*Store, error) {
	s := &Store{
		matches: make([]model.Match, len(matches)),
		byID:    make(map[int64]int, len(matches)),
		teamSet: make(map[string]struct{}),
	}
	copy(s.matches, matches)

	for i, m := range s.matches {
		if _, dup := s.byID[m.ID]; dup {
			return nil, fmt.Errorf("duplicate match ID %d", m.ID)
		}
		s.byID[m.ID] = i
		s.teamSet[m.Team1] = struct{}{}
		s.teamSet[m.Team2] = struct{}{}
	}
	s.teams = make([]string, 0, len(s.teamSet))
	for t := range s.teamSet {
		s.teams = append(s.teams, t)
	}
	sort.Strings(s.teams)

	s.deliveries = make([]model.Delivery, 0, len(deliveries))
	for _, d := range deliveries {
		idx, ok := s.byID[d.MatchID]
		if !ok {
			s.dropped++
			continue
		}
		m := &s.matches[idx]
		d.BowlingTeam = BowlingTeam(m.Team1, m.Team2, d.BattingTeam)
		d.BowlerRun = BowlerRun(d.ExtraType, d.TotalRun)
		d.IsBowlerWicket = BowlerWicket(d.Kind, d.IsWicketDelivery)
		d.PlayerOfMatch = m.PlayerOfMatch
		s.deliveries = append(s.deliveries, d)
	}

	for _, d := range s.deliveries {
		if !d.IsSuperOver() {
			s.regular = append(s.regular, d)
		}
	}
	return s, nil
}

// BowlingTeam returns the side of the match that is not battingTeam. It
// mirrors removing the batting team's name from the concatenated team names.
func BowlingTeam(team1, team2, battingTeam string) string {
	switch battingTeam {
	case team1:
		return team2
	case team2:
		return team1
	}
	if battingTeam == "" {
		return team1 + team2
	}
	return strings.ReplaceAll(team1+team2, battingTeam, "")
}

// BowlerRun returns the runs charged to the bowler for one delivery. Byes,
// leg byes and penalty runs are not the bowler's fault.
func BowlerRun(extraType string, totalRun int) int {
	switch extraType {
	case model.ExtraPenalty, model.ExtraLegByes, model.ExtraByes:
		return 0
	}
	return totalRun
}

// BowlerWicket returns 1 when the dismissal is credited to the bowler.
func BowlerWicket(kind string, isWicketDelivery bool) int {
	if !isWicketDelivery {
		return 0
	}
	if _, ok := bowlerWicketKinds[kind]; ok {
		return 1
	}
	return 0
}

// Sources names the two tabular inputs.
type Sources struct {
	MatchesPath    string
	DeliveriesPath string
}

// Load reads both sources from disk and builds the store. Any error is fatal
// for the caller: an empty or partial store is never returned.
func Load(ctx context.Context, src Sources, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if src.MatchesPath == "" || src.DeliveriesPath == "" {
		return nil, fmt.Errorf("both match and delivery sources are required")
	}

	matches, err := parser.ParseMatchesFile(src.MatchesPath)
	if err != nil {
		return nil, fmt.Errorf("load matches: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	deliveries, err := parser.ParseDeliveriesFile(src.DeliveriesPath)
	if err != nil {
		return nil, fmt.Errorf("load deliveries: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("load matches: %s has no rows", src.MatchesPath)
	}

	s, err := New(matches, deliveries)
	if err != nil {
		return nil, fmt.Errorf("build dataset: %w", err)
	}
	logger.Info("dataset loaded",
		"matches", len(s.matches),
		"deliveries", len(s.deliveries),
		"teams", len(s.teams),
		"dropped_deliveries", s.dropped,
	)
	if s.dropped > 0 {
		logger.Warn("deliveries reference unknown matches", "count", s.dropped)
	}
	return s, nil
}

// Teams returns the sorted, deduplicated union of Team1 and Team2.
func (s *Store) Teams() []string { return s.teams }

// HasTeam reports whether name appears in the match table (exact match).
func (s *Store) HasTeam(name string) bool {
	_, ok := s.teamSet[name]
	return ok
}

// Matches returns the match table in source order.
func (s *Store) Matches() []model.Match { return s.matches }

// Match returns the match with the given ID.
func (s *Store) Match(id int64) (model.Match, bool) {
	idx, ok := s.byID[id]
	if !ok {
		return model.Match{}, false
	}
	return s.matches[idx], true
}

// Deliveries returns the full joined delivery view, super overs included.
func (s *Store) Deliveries() []model.Delivery { return s.deliveries }

// Regular returns the joined deliveries from innings 1 and 2 only.
func (s *Store) Regular() []model.Delivery { return s.regular }

// Dropped returns the number of deliveries discarded by the join.
func (s *Store) Dropped() int { return s.dropped }

// FilterMatches returns the matches satisfying keep, in order.
func FilterMatches(rows []model.Match, keep func(*model.Match) bool) []model.Match {
	var out []model.Match
	for i := range rows {
		if keep(&rows[i]) {
			out = append(out, rows[i])
		}
	}
	return out
}

// Filter returns the deliveries satisfying keep, in order.
func Filter(rows []model.Delivery, keep func(*model.Delivery) bool) []model.Delivery {
	var out []model.Delivery
	for i := range rows {
		if keep(&rows[i]) {
			out = append(out, rows[i])
		}
	}
	return out
}
