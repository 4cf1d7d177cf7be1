package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pable/go-ipl-stats/internal/report"
)

// queryParams returns the named query parameters, writing a 400 and
// returning ok=false if any is missing or blank. Values are returned as sent.
func queryParams(w http.ResponseWriter, r *http.Request, names ...string) (vals []string, ok bool) {
	q := r.URL.Query()
	for _, n := range names {
		v := q.Get(n)
		if strings.TrimSpace(v) == "" {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("missing query parameter %q", n))
			return nil, false
		}
		vals = append(vals, v)
	}
	return vals, true
}

func (s *Server) handleTeamsPlayed(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, s.engine.TeamsPlayed(), false)
}

func (s *Server) handleTeam1VsTeam2(w http.ResponseWriter, r *http.Request) {
	p, ok := queryParams(w, r, "team1", "team2")
	if !ok {
		return
	}
	s.writeJSON(w, r, s.engine.HeadToHead(p[0], p[1]), false)
}

func (s *Server) handleOverallRecord(w http.ResponseWriter, r *http.Request) {
	p, ok := queryParams(w, r, "team")
	if !ok {
		return
	}
	s.writeJSON(w, r, s.engine.OverallRecord(p[0]), false)
}

func (s *Server) handleTeamReport(w http.ResponseWriter, r *http.Request) {
	p, ok := queryParams(w, r, "team")
	if !ok {
		return
	}
	rep, err := s.engine.TeamFullReport(r.Context(), p[0])
	if err != nil {
		s.reportFailed(w, r, err)
		return
	}
	s.writeJSON(w, r, report.Keyed(p[0], rep), true)
}

func (s *Server) handleBatsmanRecord(w http.ResponseWriter, r *http.Request) {
	p, ok := queryParams(w, r, "batsman")
	if !ok {
		return
	}
	rep, err := s.engine.BatsmanFullReport(r.Context(), p[0])
	if err != nil {
		s.reportFailed(w, r, err)
		return
	}
	s.writeJSON(w, r, report.Keyed(p[0], rep), true)
}

func (s *Server) handleBowlingRecord(w http.ResponseWriter, r *http.Request) {
	p, ok := queryParams(w, r, "bowler")
	if !ok {
		return
	}
	rep, err := s.engine.BowlerFullReport(r.Context(), p[0])
	if err != nil {
		s.reportFailed(w, r, err)
		return
	}
	s.writeJSON(w, r, report.Keyed(p[0], rep), true)
}

// reportFailed is only reached when the client went away mid-report.
func (s *Server) reportFailed(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Warn("report aborted",
		"request_id", RequestIDFromContext(r.Context()),
		"path", r.URL.Path,
		"err", err)
	writeError(w, http.StatusServiceUnavailable, "report aborted")
}
