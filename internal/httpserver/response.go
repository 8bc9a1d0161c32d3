package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	authdomain "blogplatform/backend/internal/domain/auth"
	blogdomain "blogplatform/backend/internal/domain/blog"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeMethodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

type userView struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Bio            string    `json:"bio,omitempty"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	IsActive       bool      `json:"is_active"`
	IsAdmin        bool      `json:"is_admin"`
	CreatedAt      time.Time `json:"created_at"`
}

type postView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Slug        string    `json:"slug"`
	AuthorID    string    `json:"author_id"`
	Tags        []string  `json:"tags"`
	IsPublished bool      `json:"is_published"`
	PublishedAt time.Time `json:"published_at"`
}

type commentView struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"author_id"`
	PostID    string    `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

type notificationView struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	Timestamp time.Time `json:"timestamp"`
}

type tokenPairView struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

func viewUser(u *authdomain.User) userView {
	return userView{
		ID:             u.ID,
		Email:          u.Email,
		Bio:            u.Bio,
		ProfilePicture: u.ProfilePicture,
		IsActive:       u.IsActive,
		IsAdmin:        u.IsAdmin,
		CreatedAt:      u.CreatedAt,
	}
}

func viewUsers(users []*authdomain.User) []userView {
	out := make([]userView, 0, len(users))
	for _, u := range users {
		out = append(out, viewUser(u))
	}
	return out
}

func viewPost(p *blogdomain.Post) postView {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return postView{
		ID:          p.ID,
		Title:       p.Title,
		Content:     p.Content,
		Slug:        p.Slug,
		AuthorID:    p.AuthorID,
		Tags:        tags,
		IsPublished: p.IsPublished,
		PublishedAt: p.PublishedAt,
	}
}

func viewPosts(posts []*blogdomain.Post) []postView {
	out := make([]postView, 0, len(posts))
	for _, p := range posts {
		out = append(out, viewPost(p))
	}
	return out
}

func viewComment(c *blogdomain.Comment) commentView {
	return commentView{
		ID:        c.ID,
		Content:   c.Content,
		AuthorID:  c.AuthorID,
		PostID:    c.PostID,
		CreatedAt: c.CreatedAt,
	}
}

func viewComments(comments []*blogdomain.Comment) []commentView {
	out := make([]commentView, 0, len(comments))
	for _, c := range comments {
		out = append(out, viewComment(c))
	}
	return out
}

func viewNotifications(items []*blogdomain.Notification) []notificationView {
	out := make([]notificationView, 0, len(items))
	for _, n := range items {
		out = append(out, notificationView{
			ID:        n.ID,
			PostID:    n.PostID,
			Message:   n.Message,
			IsRead:    n.IsRead,
			Timestamp: n.Timestamp,
		})
	}
	return out
}

func viewTokenPair(pair *authdomain.TokenPair) tokenPairView {
	return tokenPairView{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
	}
}
