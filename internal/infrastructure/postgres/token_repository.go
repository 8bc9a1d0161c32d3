package postgres

import (
	"context"
	"time"

	domain "blogplatform/backend/internal/domain/auth"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TokenBlacklistRepository persists revoked token strings. Rows are only ever
// inserted and checked for existence; nothing prunes them.
type TokenBlacklistRepository struct {
	pool *pgxpool.Pool
}

// NewTokenBlacklistRepository constructs a repository.
func NewTokenBlacklistRepository(pool *pgxpool.Pool) *TokenBlacklistRepository {
	return &TokenBlacklistRepository{pool: pool}
}

// Add inserts a revoked token. Revoking the same token twice just stores a
// second row; Contains only cares about existence.
func (r *TokenBlacklistRepository) Add(ctx context.Context, token string, revokedAt time.Time) error {
	const query = `
INSERT INTO token_blacklist (id, token, revoked_at)
VALUES ($1, $2, $3)
`
	_, err := r.pool.Exec(ctx, query, uuid.NewString(), token, revokedAt)
	return err
}

// Contains reports whether the token has been revoked.
func (r *TokenBlacklistRepository) Contains(ctx context.Context, token string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM token_blacklist WHERE token = $1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, token).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// RefreshTokenRepository records issued refresh tokens in PostgreSQL.
type RefreshTokenRepository struct {
	pool *pgxpool.Pool
}

// NewRefreshTokenRepository constructs a repository.
func NewRefreshTokenRepository(pool *pgxpool.Pool) *RefreshTokenRepository {
	return &RefreshTokenRepository{pool: pool}
}

// Create inserts a refresh token row.
func (r *RefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	const query = `
INSERT INTO refresh_tokens (id, token, user_id, created_at, expires_at)
VALUES ($1, $2, $3, $4, $5)
`
	_, err := r.pool.Exec(ctx, query,
		token.ID,
		token.Token,
		token.UserID,
		token.CreatedAt,
		token.ExpiresAt,
	)
	return err
}
