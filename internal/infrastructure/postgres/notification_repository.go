package postgres

import (
	"context"

	domain "blogplatform/backend/internal/domain/blog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NotificationRepository persists notifications in PostgreSQL.
type NotificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository constructs a repository.
func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

// Create inserts a notification.
func (r *NotificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	const query = `
INSERT INTO notifications (id, user_id, post_id, message, is_read, timestamp)
VALUES ($1, $2, $3, $4, $5, $6)
`
	_, err := r.pool.Exec(ctx, query,
		notification.ID,
		notification.UserID,
		notification.PostID,
		notification.Message,
		notification.IsRead,
		notification.Timestamp,
	)
	return err
}

// ListByUser returns the user's notifications, newest first.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error) {
	const query = `
SELECT id, user_id, post_id, message, is_read, timestamp
FROM notifications WHERE user_id = $1
ORDER BY timestamp DESC
`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.PostID, &n.Message, &n.IsRead, &n.Timestamp); err != nil {
			return nil, err
		}
		notifications = append(notifications, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notifications, nil
}
