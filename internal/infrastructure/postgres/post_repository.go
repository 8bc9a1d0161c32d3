package postgres

import (
	"context"
	"errors"
	"fmt"

	domain "blogplatform/backend/internal/domain/blog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostRepository persists posts and their tag associations in PostgreSQL.
type PostRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository constructs a repository.
func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

// Create inserts a new post and attaches its tags in one transaction.
func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const query = `
INSERT INTO posts (id, title, content, slug, author_id, is_published, published_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`
	_, err = tx.Exec(ctx, query,
		post.ID,
		post.Title,
		post.Content,
		post.Slug,
		post.AuthorID,
		post.IsPublished,
		post.PublishedAt,
		post.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSlug
		}
		return err
	}

	if err := attachTags(ctx, tx, post.ID, post.Tags); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// GetByID fetches a post with its tag names.
func (r *PostRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	const query = `
SELECT id, title, content, slug, author_id, is_published, published_at, updated_at
FROM posts WHERE id = $1
`
	row := r.pool.QueryRow(ctx, query, id)
	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}
	if err := r.loadTags(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// List returns posts matching the filter, newest first.
func (r *PostRepository) List(ctx context.Context, filter domain.PostFilter) ([]*domain.Post, error) {
	query := `
SELECT p.id, p.title, p.content, p.slug, p.author_id, p.is_published, p.published_at, p.updated_at
FROM posts p
`
	var (
		args  []any
		where []string
	)
	if filter.Tag != "" {
		query += "JOIN post_tag pt ON pt.post_id = p.id JOIN tags t ON t.id = pt.tag_id\n"
		args = append(args, filter.Tag)
		where = append(where, fmt.Sprintf("t.name = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf("p.title ILIKE $%d", len(args)))
	}
	if filter.AuthorID != "" {
		args = append(args, filter.AuthorID)
		where = append(where, fmt.Sprintf("p.author_id = $%d", len(args)))
	}
	for i, cond := range where {
		if i == 0 {
			query += "WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += "\nORDER BY p.published_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf("\nLIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*domain.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, p := range posts {
		if err := r.loadTags(ctx, p); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// Update modifies an existing post and replaces its tag set.
func (r *PostRepository) Update(ctx context.Context, post *domain.Post) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const query = `
UPDATE posts
SET title = $2, content = $3, slug = $4, is_published = $5, updated_at = $6
WHERE id = $1
`
	ct, err := tx.Exec(ctx, query,
		post.ID,
		post.Title,
		post.Content,
		post.Slug,
		post.IsPublished,
		post.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSlug
		}
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrPostNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM post_tag WHERE post_id = $1`, post.ID); err != nil {
		return err
	}
	if err := attachTags(ctx, tx, post.ID, post.Tags); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Delete removes a post by id. Tag links, comments, and likes cascade.
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM posts WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) loadTags(ctx context.Context, post *domain.Post) error {
	const query = `
SELECT t.name FROM tags t
JOIN post_tag pt ON pt.tag_id = t.id
WHERE pt.post_id = $1
ORDER BY t.name
`
	rows, err := r.pool.Query(ctx, query, post.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		tags = append(tags, name)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	post.Tags = tags
	return nil
}

// attachTags upserts each tag by name and links it to the post.
func attachTags(ctx context.Context, tx pgx.Tx, postID string, tags []string) error {
	const upsert = `
INSERT INTO tags (id, name) VALUES ($1, $2)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id
`
	const link = `
INSERT INTO post_tag (post_id, tag_id) VALUES ($1, $2)
ON CONFLICT DO NOTHING
`
	for _, name := range tags {
		var tagID string
		if err := tx.QueryRow(ctx, upsert, uuid.NewString(), name).Scan(&tagID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, link, postID, tagID); err != nil {
			return err
		}
	}
	return nil
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var p domain.Post
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Content,
		&p.Slug,
		&p.AuthorID,
		&p.IsPublished,
		&p.PublishedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
