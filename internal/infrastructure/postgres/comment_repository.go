package postgres

import (
	"context"
	"errors"

	domain "blogplatform/backend/internal/domain/blog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CommentRepository persists comments in PostgreSQL.
type CommentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository constructs a repository.
func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

// Create inserts a new comment.
func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	const query = `
INSERT INTO comments (id, content, author_id, post_id, created_at)
VALUES ($1, $2, $3, $4, $5)
`
	_, err := r.pool.Exec(ctx, query,
		comment.ID,
		comment.Content,
		comment.AuthorID,
		comment.PostID,
		comment.CreatedAt,
	)
	return err
}

// GetByID fetches a comment scoped to its post.
func (r *CommentRepository) GetByID(ctx context.Context, postID, commentID string) (*domain.Comment, error) {
	const query = `
SELECT id, content, author_id, post_id, created_at
FROM comments WHERE id = $1 AND post_id = $2
`
	row := r.pool.QueryRow(ctx, query, commentID, postID)
	comment, err := scanComment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}

// ListByPost returns all comments on a post, oldest first.
func (r *CommentRepository) ListByPost(ctx context.Context, postID string) ([]*domain.Comment, error) {
	const query = `
SELECT id, content, author_id, post_id, created_at
FROM comments WHERE post_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}

// Update modifies an existing comment.
func (r *CommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	const query = `
UPDATE comments
SET content = $2, created_at = $3
WHERE id = $1
`
	ct, err := r.pool.Exec(ctx, query, comment.ID, comment.Content, comment.CreatedAt)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

// Delete removes a comment by id.
func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM comments WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func scanComment(row pgx.Row) (*domain.Comment, error) {
	var c domain.Comment
	err := row.Scan(
		&c.ID,
		&c.Content,
		&c.AuthorID,
		&c.PostID,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
