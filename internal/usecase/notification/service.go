package notification

import (
	"context"

	domain "blogplatform/backend/internal/domain/blog"
)

// Service lists a user's notifications.
type Service struct {
	notifications domain.NotificationRepository
}

// NewService constructs a notification service.
func NewService(notifications domain.NotificationRepository) *Service {
	return &Service{notifications: notifications}
}

// ListForUser returns the user's notifications, newest first.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]*domain.Notification, error) {
	return s.notifications.ListByUser(ctx, userID)
}
