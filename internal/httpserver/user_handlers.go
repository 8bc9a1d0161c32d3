package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	authdomain "blogplatform/backend/internal/domain/auth"
	userusecase "blogplatform/backend/internal/usecase/user"
)

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"user": viewUser(user)})
	case http.MethodPut, http.MethodPatch:
		var payload struct {
			Email          *string `json:"email"`
			Bio            *string `json:"bio"`
			ProfilePicture *string `json:"profile_picture"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			if errors.Is(err, io.EOF) {
				writeError(w, http.StatusBadRequest, "update payload required")
			} else {
				writeError(w, http.StatusBadRequest, "invalid JSON payload")
			}
			return
		}

		updated, err := s.userService.Update(r.Context(), user.ID, userusecase.UpdateInput{
			Email:          payload.Email,
			Bio:            payload.Bio,
			ProfilePicture: payload.ProfilePicture,
		})
		if err != nil {
			switch {
			case errors.Is(err, authdomain.ErrEmailExists):
				writeError(w, http.StatusBadRequest, "email already taken")
			case errors.Is(err, authdomain.ErrUserNotFound):
				writeError(w, http.StatusNotFound, err.Error())
			default:
				writeError(w, http.StatusBadRequest, err.Error())
			}
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"user": viewUser(updated)})
	case http.MethodDelete:
		if err := s.userService.Delete(r.Context(), user.ID); err != nil {
			if errors.Is(err, authdomain.ErrUserNotFound) {
				writeError(w, http.StatusNotFound, err.Error())
			} else {
				writeError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "account deleted successfully"})
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete)
	}
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut && r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPut, http.MethodPost)
		return
	}

	user, ok := currentUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var payload struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "old_password and new_password required")
		} else {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
		}
		return
	}

	if err := s.authService.ChangePassword(r.Context(), user.ID, payload.OldPassword, payload.NewPassword); err != nil {
		switch {
		case errors.Is(err, authdomain.ErrPasswordMismatch):
			writeError(w, http.StatusBadRequest, "old password does not match")
		case errors.Is(err, authdomain.ErrPasswordUnchanged):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, authdomain.ErrUserNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "password changed successfully"})
}

// handleUserSubtree dispatches /users/{email} and /users/{email}/posts.
func (s *Server) handleUserSubtree(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	remainder := strings.Trim(strings.TrimPrefix(r.URL.Path, "/users/"), "/")
	if remainder == "" {
		writeError(w, http.StatusBadRequest, "user email required")
		return
	}

	segments := strings.Split(remainder, "/")
	email := strings.TrimSpace(segments[0])
	if email == "" || email == "me" {
		writeError(w, http.StatusNotFound, "resource not found")
		return
	}

	switch len(segments) {
	case 1:
		user, err := s.userService.GetByEmail(r.Context(), email)
		if err != nil {
			mapUserLookupError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"user": viewUser(user)})
	case 2:
		if segments[1] != "posts" {
			writeError(w, http.StatusNotFound, "resource not found")
			return
		}
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := parseLimit(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			limit = n
		}
		posts, err := s.blogService.ListByAuthorEmail(r.Context(), email, limit)
		if err != nil {
			mapUserLookupError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"posts": viewPosts(posts)})
	default:
		writeError(w, http.StatusNotFound, "resource not found")
	}
}

func (s *Server) handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	if !s.requireAdmin(w, r) {
		return
	}

	users, err := s.userService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": viewUsers(users)})
}
