package blog

import "context"

// PostFilter narrows post listings.
type PostFilter struct {
	Search   string
	AuthorID string
	Tag      string
	Limit    int
}

// PostRepository defines persistence operations for posts and their tags.
type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id string) (*Post, error)
	List(ctx context.Context, filter PostFilter) ([]*Post, error)
	Update(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id string) error
}

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	GetByID(ctx context.Context, postID, commentID string) (*Comment, error)
	ListByPost(ctx context.Context, postID string) ([]*Comment, error)
	Update(ctx context.Context, comment *Comment) error
	Delete(ctx context.Context, id string) error
}

// LikeRepository defines persistence operations for likes.
type LikeRepository interface {
	Create(ctx context.Context, like *Like) error
	Exists(ctx context.Context, userID, postID string) (bool, error)
	Delete(ctx context.Context, userID, postID string) error
}

// NotificationRepository defines persistence operations for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, notification *Notification) error
	ListByUser(ctx context.Context, userID string) ([]*Notification, error)
}
