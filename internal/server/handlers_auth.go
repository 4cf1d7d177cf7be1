package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/pable/go-ipl-stats/internal/auth"
	"github.com/pable/go-ipl-stats/internal/storage"
)

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		renderHTML(w, http.StatusOK, loginPage("", ""))
		return
	}
	renderHTML(w, http.StatusOK, dashboardPage(claims.Name, s.engine.Store().Teams()))
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := ClaimsFromContext(r.Context()); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	renderHTML(w, http.StatusOK, loginPage("", ""))
}

func (s *Server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.loginFailed(w, r, http.StatusBadRequest, msgIncompleteForm)
		return
	}
	token, u, err := s.auth.Login(r.Context(), r.PostForm.Get("email"), r.PostForm.Get("password"))
	switch {
	case errors.Is(err, auth.ErrIncompleteForm):
		s.loginFailed(w, r, http.StatusBadRequest, msgIncompleteForm)
		return
	case errors.Is(err, auth.ErrInvalidCredentials):
		s.logger.Info("login failed", "request_id", RequestIDFromContext(r.Context()))
		s.loginFailed(w, r, http.StatusUnauthorized, msgLoginFailed)
		return
	case err != nil:
		s.logger.Error("login", "request_id", RequestIDFromContext(r.Context()), "err", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	s.logger.Info("login", "user_id", u.ID, "request_id", RequestIDFromContext(r.Context()))
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(s.auth.TTL()),
	})
	if wantsJSON(r) {
		s.writeJSON(w, r, map[string]any{
			"token":      token,
			"expires_in": int(s.auth.TTL().Seconds()),
			"name":       u.Name,
		}, false)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// loginFailed re-renders the form for browsers; status applies to JSON
// clients only.
func (s *Server) loginFailed(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if wantsJSON(r) {
		writeError(w, status, msg)
		return
	}
	renderHTML(w, http.StatusOK, loginPage("", msg))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	renderHTML(w, http.StatusOK, registerPage(""))
}

func (s *Server) handleRegisterSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.registerFailed(w, r, http.StatusBadRequest, msgIncompleteForm)
		return
	}
	f := r.PostForm
	u, err := s.auth.Register(r.Context(), f.Get("name"), f.Get("email"), f.Get("password"))
	switch {
	case errors.Is(err, auth.ErrIncompleteForm):
		s.registerFailed(w, r, http.StatusBadRequest, msgIncompleteForm)
		return
	case errors.Is(err, auth.ErrInvalidEmail):
		s.registerFailed(w, r, http.StatusBadRequest, msgInvalidEmail)
		return
	case errors.Is(err, storage.ErrUserExists):
		s.registerFailed(w, r, http.StatusConflict, msgAccountExists)
		return
	case err != nil:
		s.logger.Error("register", "request_id", RequestIDFromContext(r.Context()), "err", err)
		s.registerFailed(w, r, http.StatusInternalServerError, msgRegisterFailure)
		return
	}

	s.logger.Info("registered", "user_id", u.ID, "request_id", RequestIDFromContext(r.Context()))
	if wantsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(errorBody{Code: http.StatusCreated, Message: "registered"})
		return
	}
	renderHTML(w, http.StatusOK, loginPage(msgRegistered, ""))
}

func (s *Server) registerFailed(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if wantsJSON(r) {
		writeError(w, status, msg)
		return
	}
	renderHTML(w, http.StatusOK, registerPage(msg))
}
