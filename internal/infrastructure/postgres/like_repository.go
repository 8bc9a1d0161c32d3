package postgres

import (
	"context"

	domain "blogplatform/backend/internal/domain/blog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LikeRepository persists likes in PostgreSQL.
type LikeRepository struct {
	pool *pgxpool.Pool
}

// NewLikeRepository constructs a repository.
func NewLikeRepository(pool *pgxpool.Pool) *LikeRepository {
	return &LikeRepository{pool: pool}
}

// Create inserts a like row.
func (r *LikeRepository) Create(ctx context.Context, like *domain.Like) error {
	const query = `
INSERT INTO likes (user_id, post_id, created_at)
VALUES ($1, $2, $3)
`
	_, err := r.pool.Exec(ctx, query, like.UserID, like.PostID, like.CreatedAt)
	if err != nil && isUniqueViolation(err) {
		return domain.ErrAlreadyLiked
	}
	return err
}

// Exists reports whether the user already liked the post.
func (r *LikeRepository) Exists(ctx context.Context, userID, postID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM likes WHERE user_id = $1 AND post_id = $2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, postID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Delete removes the user's like from the post.
func (r *LikeRepository) Delete(ctx context.Context, userID, postID string) error {
	const query = `DELETE FROM likes WHERE user_id = $1 AND post_id = $2`
	ct, err := r.pool.Exec(ctx, query, userID, postID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrLikeNotFound
	}
	return nil
}
