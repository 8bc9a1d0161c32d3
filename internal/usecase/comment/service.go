package comment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "blogplatform/backend/internal/domain/blog"

	"github.com/google/uuid"
)

// Comments are editable only for a short while after creation.
const editWindow = 10 * time.Minute

// Service encapsulates comment use cases. Commenting on a foreign post
// leaves a notification for the post author.
type Service struct {
	comments      domain.CommentRepository
	posts         domain.PostRepository
	notifications domain.NotificationRepository
	nowFunc       func() time.Time
}

// NewService constructs a comment service.
func NewService(comments domain.CommentRepository, posts domain.PostRepository, notifications domain.NotificationRepository) *Service {
	return &Service{
		comments:      comments,
		posts:         posts,
		notifications: notifications,
		nowFunc:       time.Now,
	}
}

// Create adds a comment to a post and notifies the post author when the
// commenter is someone else.
func (s *Service) Create(ctx context.Context, postID, authorID, authorEmail, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.New("content is required")
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		ID:        uuid.NewString(),
		Content:   content,
		AuthorID:  authorID,
		PostID:    post.ID,
		CreatedAt: s.nowFunc().UTC(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	if post.AuthorID != authorID {
		notification := &domain.Notification{
			ID:        uuid.NewString(),
			UserID:    post.AuthorID,
			PostID:    post.ID,
			Message:   fmt.Sprintf("%s commented on your post", authorEmail),
			Timestamp: s.nowFunc().UTC(),
		}
		if err := s.notifications.Create(ctx, notification); err != nil {
			return nil, err
		}
	}

	return comment, nil
}

// ListByPost returns all comments on a post.
func (s *Service) ListByPost(ctx context.Context, postID string) ([]*domain.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.comments.ListByPost(ctx, postID)
}

// Update edits a comment. Only the comment author may edit, and only within
// the edit window. An edit restarts the window, matching how comment age is
// tracked in storage.
func (s *Service) Update(ctx context.Context, postID, commentID, callerID, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.New("content is required")
	}

	comment, err := s.comments.GetByID(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != callerID {
		return nil, domain.ErrCommentNotFound
	}

	now := s.nowFunc().UTC()
	if now.After(comment.CreatedAt.Add(editWindow)) {
		return nil, domain.ErrEditWindowClosed
	}

	comment.Content = content
	comment.CreatedAt = now
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes a comment. Only the comment author may delete it.
func (s *Service) Delete(ctx context.Context, postID, commentID, callerID string) error {
	comment, err := s.comments.GetByID(ctx, postID, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != callerID {
		return domain.ErrCommentNotFound
	}
	return s.comments.Delete(ctx, comment.ID)
}
