package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	authdomain "blogplatform/backend/internal/domain/auth"
)

func (s *Server) registerRoutes() {
	s.router.Handle("/health", http.HandlerFunc(s.handleHealth))
	s.router.Handle("/auth/signup", http.HandlerFunc(s.handleSignup))
	s.router.Handle("/auth/login", http.HandlerFunc(s.handleLogin))
	s.router.Handle("/auth/refresh-token", http.HandlerFunc(s.handleRefreshToken))

	authenticated := s.authMiddleware
	s.router.Handle("/auth/logout", authenticated(http.HandlerFunc(s.handleLogout)))
	s.router.Handle("/posts", authenticated(http.HandlerFunc(s.handlePosts)))
	s.router.Handle("/posts/", authenticated(http.HandlerFunc(s.handlePostSubtree)))
	s.router.Handle("/tags/", authenticated(http.HandlerFunc(s.handleTagPosts)))
	s.router.Handle("/notifications", authenticated(http.HandlerFunc(s.handleNotifications)))
	s.router.Handle("/users/me", authenticated(http.HandlerFunc(s.handleMe)))
	s.router.Handle("/users/me/password", authenticated(http.HandlerFunc(s.handleChangePassword)))
	s.router.Handle("/users/", authenticated(http.HandlerFunc(s.handleUserSubtree)))
	s.router.Handle("/admin/users", authenticated(http.HandlerFunc(s.handleAdminUsers)))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	user, err := s.authService.Register(r.Context(), payload.Email, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, authdomain.ErrEmailExists):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"user": viewUser(user)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	pair, _, err := s.authService.Login(r.Context(), authdomain.Credentials{
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		if errors.Is(err, authdomain.ErrInvalidCredentials) {
			// 406 and one message for both unknown email and wrong password.
			writeError(w, http.StatusNotAcceptable, "invalid credentials")
		} else {
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, viewTokenPair(pair))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	token, ok := currentTokenFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "could not validate credentials")
		return
	}

	if err := s.authService.Logout(r.Context(), token); err != nil {
		writeError(w, http.StatusInternalServerError, "could not complete logout")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "successfully logged out"})
}

func (s *Server) handleRefreshToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		var payload struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			if errors.Is(err, io.EOF) {
				writeError(w, http.StatusBadRequest, "refresh token required")
			} else {
				writeError(w, http.StatusBadRequest, "invalid JSON payload")
			}
			return
		}
		token = strings.TrimSpace(payload.RefreshToken)
	}

	if token == "" {
		writeError(w, http.StatusBadRequest, "refresh token required")
		return
	}

	pair, err := s.authService.Refresh(r.Context(), token)
	if err != nil {
		if errors.Is(err, authdomain.ErrTokenInvalid) || errors.Is(err, authdomain.ErrTokenRevoked) {
			writeError(w, http.StatusUnauthorized, "could not validate credentials")
		} else {
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, viewTokenPair(pair))
}
