package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	authdomain "blogplatform/backend/internal/domain/auth"
	blogdomain "blogplatform/backend/internal/domain/blog"
	blogusecase "blogplatform/backend/internal/usecase/blog"
)

func (s *Server) handlePosts(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := parseLimit(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			limit = n
		}
		posts, err := s.blogService.List(r.Context(), r.URL.Query().Get("search"), limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"posts": viewPosts(posts)})
	case http.MethodPost:
		var payload blogusecase.CreateInput
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}
		post, err := s.blogService.Create(r.Context(), user.ID, payload)
		if err != nil {
			if errors.Is(err, blogdomain.ErrDuplicateSlug) {
				writeError(w, http.StatusConflict, err.Error())
			} else {
				writeError(w, http.StatusBadRequest, err.Error())
			}
			return
		}
		writeJSON(w, http.StatusCreated, viewPost(post))
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

// handlePostSubtree dispatches /posts/{id}, /posts/mine, and the comment and
// like subresources under a post.
func (s *Server) handlePostSubtree(w http.ResponseWriter, r *http.Request) {
	remainder := strings.Trim(strings.TrimPrefix(r.URL.Path, "/posts/"), "/")
	if remainder == "" {
		writeError(w, http.StatusBadRequest, "post id required")
		return
	}

	segments := strings.Split(remainder, "/")
	id := strings.TrimSpace(segments[0])

	if id == "mine" && len(segments) == 1 {
		s.handleMyPosts(w, r)
		return
	}

	switch len(segments) {
	case 1:
		s.handlePostByID(w, r, id)
	case 2:
		switch segments[1] {
		case "comments":
			s.handlePostComments(w, r, id)
		case "like":
			s.handlePostLike(w, r, id)
		default:
			writeError(w, http.StatusNotFound, "resource not found")
		}
	case 3:
		if segments[1] != "comments" {
			writeError(w, http.StatusNotFound, "resource not found")
			return
		}
		s.handleCommentByID(w, r, id, strings.TrimSpace(segments[2]))
	default:
		writeError(w, http.StatusNotFound, "resource not found")
	}
}

func (s *Server) handleMyPosts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	user, ok := currentUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	posts, err := s.blogService.ListByAuthor(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": viewPosts(posts)})
}

func (s *Server) handlePostByID(w http.ResponseWriter, r *http.Request, id string) {
	user, ok := currentUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		post, err := s.blogService.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, blogdomain.ErrPostNotFound) {
				writeError(w, http.StatusNotFound, err.Error())
			} else {
				writeError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		writeJSON(w, http.StatusOK, viewPost(post))
	case http.MethodPut, http.MethodPatch:
		var payload blogusecase.UpdateInput
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}
		post, err := s.blogService.Update(r.Context(), id, user.ID, payload)
		if err != nil {
			switch {
			case errors.Is(err, blogdomain.ErrPostNotFound):
				writeError(w, http.StatusNotFound, err.Error())
			case errors.Is(err, blogdomain.ErrNotAuthor):
				writeError(w, http.StatusUnauthorized, err.Error())
			case errors.Is(err, blogdomain.ErrDuplicateSlug):
				writeError(w, http.StatusConflict, err.Error())
			default:
				writeError(w, http.StatusBadRequest, err.Error())
			}
			return
		}
		writeJSON(w, http.StatusOK, viewPost(post))
	case http.MethodDelete:
		if err := s.blogService.Delete(r.Context(), id, user.ID); err != nil {
			switch {
			case errors.Is(err, blogdomain.ErrPostNotFound):
				writeError(w, http.StatusNotFound, err.Error())
			case errors.Is(err, blogdomain.ErrNotAuthor):
				writeError(w, http.StatusUnauthorized, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete)
	}
}

func (s *Server) handleTagPosts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	remainder := strings.Trim(strings.TrimPrefix(r.URL.Path, "/tags/"), "/")
	segments := strings.Split(remainder, "/")
	if len(segments) != 2 || segments[1] != "posts" || segments[0] == "" {
		writeError(w, http.StatusNotFound, "resource not found")
		return
	}

	posts, err := s.blogService.ListByTag(r.Context(), segments[0])
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(posts) == 0 {
		writeError(w, http.StatusNotFound, "no posts found with tag: "+segments[0])
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": viewPosts(posts)})
}

func parseLimit(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.New("limit must be a non-negative integer")
	}
	return n, nil
}

func mapUserLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, authdomain.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "user does not exist")
	} else {
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
