// Package server exposes the statistics engine over HTTP behind a login.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/pable/go-ipl-stats/internal/aggregator"
	"github.com/pable/go-ipl-stats/internal/auth"
	"github.com/pable/go-ipl-stats/internal/report"
)

// Config holds the HTTP-facing settings.
type Config struct {
	ListenAddr         string
	RateLimitRPS       float64
	RateLimitBurst     int
	CORSAllowedOrigins []string
	SecureCookies      bool          // set Secure on the session cookie
	ShutdownTimeout    time.Duration // default 10s
}

// Server serves the login pages and the statistics API.
type Server struct {
	engine  *aggregator.Engine
	auth    *auth.Service
	logger  *slog.Logger
	cfg     Config
	limiter *rateLimiter
}

// New returns a server. A nil logger discards log output.
func New(engine *aggregator.Engine, authSvc *auth.Service, logger *slog.Logger, cfg Config) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	if cfg.RateLimitRPS <= 0 {
		cfg.RateLimitRPS = 20
	}
	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = 40
	}
	return &Server{
		engine:  engine,
		auth:    authSvc,
		logger:  logger,
		cfg:     cfg,
		limiter: newRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	}
}

// Handler returns the routed handler with the middleware stack applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(s.limiter.Middleware)
	r.Use(s.withSession)

	r.Get("/healthz", s.handleHealth)
	r.Get("/", s.handleIndex)
	r.Get("/login", s.handleLoginPage)
	r.Post("/login", s.handleLoginSubmit)
	r.Get("/logout", s.handleLogout)
	r.Get("/register", s.handleRegisterPage)
	r.Post("/register", s.handleRegisterSubmit)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/teams-played-ipl", s.handleTeamsPlayed)
		r.Get("/team1-vs-team2", s.handleTeam1VsTeam2)
		r.Get("/record-against-all-teams", s.handleOverallRecord)
		r.Get("/record-against-each-team", s.handleTeamReport)
		r.Get("/batsman-record", s.handleBatsmanRecord)
		r.Get("/bowling-record", s.handleBowlingRecord)
	})

	r.NotFound(s.handleNotFound)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Code: status, Message: msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, v any, indent bool) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := report.WriteJSON(w, v, indent); err != nil {
		s.logger.Error("write response", "request_id", RequestIDFromContext(r.Context()), "err", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, map[string]any{
		"status": "ok",
		"teams":  len(s.engine.Store().Teams()),
	}, false)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if wantsHTML(r) {
		renderHTML(w, http.StatusNotFound, notFoundPage(r.URL.Path))
		return
	}
	writeError(w, http.StatusNotFound, "not found")
}
