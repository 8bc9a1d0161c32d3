package blog

import (
	"errors"
	"time"
)

var (
	// ErrPostNotFound indicates a missing post.
	ErrPostNotFound = errors.New("post not found")
	// ErrDuplicateSlug signals a slug collision on create or update.
	ErrDuplicateSlug = errors.New("a post with this slug already exists")
	// ErrNotAuthor means the caller does not own the post or comment.
	ErrNotAuthor = errors.New("not authorized")
	// ErrCommentNotFound indicates a missing comment.
	ErrCommentNotFound = errors.New("comment not found")
	// ErrEditWindowClosed means the comment is too old to be edited.
	ErrEditWindowClosed = errors.New("comment edit window exceeded")
	// ErrAlreadyLiked means the user already liked the post.
	ErrAlreadyLiked = errors.New("post already liked")
	// ErrLikeNotFound means the user has not liked the post.
	ErrLikeNotFound = errors.New("like not found")
)

// Post models a blog post with its attached tag names.
type Post struct {
	ID          string
	Title       string
	Content     string
	Slug        string
	AuthorID    string
	Tags        []string
	IsPublished bool
	PublishedAt time.Time
	UpdatedAt   time.Time
}

// Comment models a comment left on a post.
type Comment struct {
	ID        string
	Content   string
	AuthorID  string
	PostID    string
	CreatedAt time.Time
}

// Like records that a user liked a post. One like per user per post.
type Like struct {
	UserID    string
	PostID    string
	CreatedAt time.Time
}

// Notification is created when someone interacts with another user's post.
type Notification struct {
	ID        string
	UserID    string
	PostID    string
	Message   string
	IsRead    bool
	Timestamp time.Time
}
