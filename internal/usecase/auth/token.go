package auth

import "time"

// TokenManager abstracts token issuance and verification.
type TokenManager interface {
	GenerateAccessToken(userID string) (string, error)
	GenerateRefreshToken(userID string) (string, error)
	Validate(token string) (string, error)
	RefreshTokenTTL() time.Duration
}
