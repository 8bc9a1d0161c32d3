package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	blogdomain "blogplatform/backend/internal/domain/blog"
)

func (s *Server) handlePostComments(w http.ResponseWriter, r *http.Request, postID string) {
	user, ok := currentUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		comments, err := s.commentService.ListByPost(r.Context(), postID)
		if err != nil {
			if errors.Is(err, blogdomain.ErrPostNotFound) {
				writeError(w, http.StatusNotFound, err.Error())
			} else {
				writeError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"comments": viewComments(comments)})
	case http.MethodPost:
		var payload struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}
		comment, err := s.commentService.Create(r.Context(), postID, user.ID, user.Email, payload.Content)
		if err != nil {
			if errors.Is(err, blogdomain.ErrPostNotFound) {
				writeError(w, http.StatusNotFound, err.Error())
			} else {
				writeError(w, http.StatusBadRequest, err.Error())
			}
			return
		}
		writeJSON(w, http.StatusCreated, viewComment(comment))
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleCommentByID(w http.ResponseWriter, r *http.Request, postID, commentID string) {
	user, ok := currentUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if commentID == "" {
		writeError(w, http.StatusBadRequest, "comment id required")
		return
	}

	switch r.Method {
	case http.MethodPut, http.MethodPatch:
		var payload struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}
		comment, err := s.commentService.Update(r.Context(), postID, commentID, user.ID, payload.Content)
		if err != nil {
			switch {
			case errors.Is(err, blogdomain.ErrCommentNotFound):
				writeError(w, http.StatusNotFound, err.Error())
			case errors.Is(err, blogdomain.ErrEditWindowClosed):
				writeError(w, http.StatusForbidden, err.Error())
			default:
				writeError(w, http.StatusBadRequest, err.Error())
			}
			return
		}
		writeJSON(w, http.StatusOK, viewComment(comment))
	case http.MethodDelete:
		if err := s.commentService.Delete(r.Context(), postID, commentID, user.ID); err != nil {
			if errors.Is(err, blogdomain.ErrCommentNotFound) {
				writeError(w, http.StatusNotFound, err.Error())
			} else {
				writeError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "comment deleted successfully"})
	default:
		writeMethodNotAllowed(w, http.MethodPut, http.MethodPatch, http.MethodDelete)
	}
}

func (s *Server) handlePostLike(w http.ResponseWriter, r *http.Request, postID string) {
	user, ok := currentUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	switch r.Method {
	case http.MethodPost:
		err := s.likeService.Like(r.Context(), postID, user.ID, user.Email)
		if err != nil {
			switch {
			case errors.Is(err, blogdomain.ErrPostNotFound):
				writeError(w, http.StatusNotFound, err.Error())
			case errors.Is(err, blogdomain.ErrAlreadyLiked):
				writeError(w, http.StatusTooManyRequests, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "post liked"})
	case http.MethodDelete:
		err := s.likeService.Unlike(r.Context(), postID, user.ID)
		if err != nil {
			switch {
			case errors.Is(err, blogdomain.ErrPostNotFound):
				writeError(w, http.StatusNotFound, err.Error())
			case errors.Is(err, blogdomain.ErrLikeNotFound):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "post unliked"})
	default:
		writeMethodNotAllowed(w, http.MethodPost, http.MethodDelete)
	}
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	user, ok := currentUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	notifications, err := s.notificationService.ListForUser(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notifications": viewNotifications(notifications)})
}
