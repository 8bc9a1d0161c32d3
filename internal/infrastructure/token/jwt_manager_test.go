package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func newTestManager() *JWTManager {
	return NewJWTManager("test-secret", 15*time.Minute, 7*24*time.Hour, "test")
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	tok, err := m.GenerateAccessToken("user-1")
	require.NoError(t, err)

	userID, err := m.Validate(tok)
	require.NoError(t, err)
	require.Equal(t, "user-1", userID)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	tok, err := m.GenerateRefreshToken("user-2")
	require.NoError(t, err)

	userID, err := m.Validate(tok)
	require.NoError(t, err)
	require.Equal(t, "user-2", userID)
}

func TestValidateExpiredToken(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Second, -time.Second, "test")

	tok, err := m.GenerateAccessToken("user-3")
	require.NoError(t, err)

	_, err = m.Validate(tok)
	require.Error(t, err)
}

func TestValidateWrongSecret(t *testing.T) {
	m := newTestManager()
	other := NewJWTManager("other-secret", 15*time.Minute, time.Hour, "test")

	tok, err := m.GenerateAccessToken("user-4")
	require.NoError(t, err)

	_, err = other.Validate(tok)
	require.Error(t, err)
}

func TestValidateMalformedToken(t *testing.T) {
	m := newTestManager()

	_, err := m.Validate("not.a.jwt")
	require.Error(t, err)
}

func TestValidateRejectsUnexpectedSigningMethod(t *testing.T) {
	m := newTestManager()

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "user-5"})
	tok, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Validate(tok)
	require.Error(t, err)
}

func TestValidateRejectsMissingSubject(t *testing.T) {
	m := newTestManager()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.Validate(signed)
	require.Error(t, err)
}

func TestTokensAreUniquePerIssuance(t *testing.T) {
	m := newTestManager()

	first, err := m.GenerateAccessToken("user-6")
	require.NoError(t, err)
	second, err := m.GenerateAccessToken("user-6")
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestRefreshTokenTTL(t *testing.T) {
	m := newTestManager()
	require.Equal(t, 7*24*time.Hour, m.RefreshTokenTTL())
}
