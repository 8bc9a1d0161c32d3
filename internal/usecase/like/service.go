package like

import (
	"context"
	"fmt"
	"time"

	domain "blogplatform/backend/internal/domain/blog"

	"github.com/google/uuid"
)

// Service encapsulates like/unlike use cases. Liking a foreign post leaves a
// notification for the post author.
type Service struct {
	likes         domain.LikeRepository
	posts         domain.PostRepository
	notifications domain.NotificationRepository
	nowFunc       func() time.Time
}

// NewService constructs a like service.
func NewService(likes domain.LikeRepository, posts domain.PostRepository, notifications domain.NotificationRepository) *Service {
	return &Service{
		likes:         likes,
		posts:         posts,
		notifications: notifications,
		nowFunc:       time.Now,
	}
}

// Like records that the user liked the post. A second like is rejected.
func (s *Service) Like(ctx context.Context, postID, userID, userEmail string) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	liked, err := s.likes.Exists(ctx, userID, post.ID)
	if err != nil {
		return err
	}
	if liked {
		return domain.ErrAlreadyLiked
	}

	if err := s.likes.Create(ctx, &domain.Like{
		UserID:    userID,
		PostID:    post.ID,
		CreatedAt: s.nowFunc().UTC(),
	}); err != nil {
		return err
	}

	if post.AuthorID != userID {
		return s.notifications.Create(ctx, &domain.Notification{
			ID:        uuid.NewString(),
			UserID:    post.AuthorID,
			PostID:    post.ID,
			Message:   fmt.Sprintf("%s liked your post", userEmail),
			Timestamp: s.nowFunc().UTC(),
		})
	}
	return nil
}

// Unlike removes the user's like from the post.
func (s *Service) Unlike(ctx context.Context, postID, userID string) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	liked, err := s.likes.Exists(ctx, userID, post.ID)
	if err != nil {
		return err
	}
	if !liked {
		return domain.ErrLikeNotFound
	}

	return s.likes.Delete(ctx, userID, post.ID)
}
