package auth

import (
	"context"
	"time"
)

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error
}

// TokenBlacklist is the revocation store consulted on every verification.
type TokenBlacklist interface {
	Add(ctx context.Context, token string, revokedAt time.Time) error
	Contains(ctx context.Context, token string) (bool, error)
}

// RefreshTokenRepository records issued refresh tokens.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *RefreshToken) error
}
