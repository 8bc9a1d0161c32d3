package token

import (
	"errors"
	"time"

	usecase "blogplatform/backend/internal/usecase/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTManager issues and validates signed JWT tokens. Access and refresh
// tokens share the signing key and differ only in lifetime.
type JWTManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
}

// NewJWTManager constructs a manager with the provided secret and lifetimes.
func NewJWTManager(secret string, accessTTL, refreshTTL time.Duration, issuer string) *JWTManager {
	return &JWTManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		issuer:     issuer,
	}
}

// Ensure JWTManager implements the TokenManager interface.
var _ usecase.TokenManager = (*JWTManager)(nil)

// Claims represents token claims.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// GenerateAccessToken creates a short-lived signed JWT containing the user id.
func (m *JWTManager) GenerateAccessToken(userID string) (string, error) {
	return m.generate(userID, m.accessTTL)
}

// GenerateRefreshToken creates a long-lived signed JWT containing the user id.
func (m *JWTManager) GenerateRefreshToken(userID string) (string, error) {
	return m.generate(userID, m.refreshTTL)
}

// RefreshTokenTTL reports the configured refresh token lifetime.
func (m *JWTManager) RefreshTokenTTL() time.Duration {
	return m.refreshTTL
}

// generate signs a token for the user. Every token carries a unique id so
// that revocation of one token never affects another issued in the same
// second.
func (m *JWTManager) generate(userID string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate parses and validates the token returning the user id when valid.
// Malformed, badly signed, and expired tokens are all one failure class.
func (m *JWTManager) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token claims")
	}
	if claims.UserID == "" {
		return "", errors.New("token missing subject")
	}
	return claims.UserID, nil
}
