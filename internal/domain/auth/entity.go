package auth

import (
	"errors"
	"time"
)

var (
	// ErrInvalidCredentials indicates a login failure. Unknown email and wrong
	// password both map here so the response never reveals which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailExists signals a duplicate email registration.
	ErrEmailExists = errors.New("email already registered")
	// ErrTokenInvalid means a supplied token cannot be validated.
	ErrTokenInvalid = errors.New("token invalid or expired")
	// ErrTokenRevoked means the token was explicitly blacklisted.
	ErrTokenRevoked = errors.New("token has been revoked")
	// ErrUserNotFound indicates missing user.
	ErrUserNotFound = errors.New("user not found")
	// ErrPasswordMismatch indicates the current password is incorrect.
	ErrPasswordMismatch = errors.New("current password does not match")
	// ErrPasswordUnchanged indicates the new password matches the current one.
	ErrPasswordUnchanged = errors.New("new password must be different from current password")
)

// User models the account entity persisted in storage.
type User struct {
	ID             string
	Email          string
	Bio            string
	ProfilePicture string
	IsActive       bool
	IsAdmin        bool
	PasswordHash   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Credentials captures raw credential input for login.
type Credentials struct {
	Email    string
	Password string
}

// TokenPair carries a freshly issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
}

// RefreshToken records an issued refresh token. Validity is still decided by
// signature, expiry, and blacklist membership alone.
type RefreshToken struct {
	ID        string
	Token     string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// RevokedToken is a blacklist entry created on logout. Entries are never
// removed, so a revoked token stays rejected past its natural expiry.
type RevokedToken struct {
	ID        string
	Token     string
	RevokedAt time.Time
}
