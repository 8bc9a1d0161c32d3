package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "blogplatform/backend/internal/domain/auth"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service coordinates authentication workflows between domain and infrastructure.
type Service struct {
	users     domain.UserRepository
	blacklist domain.TokenBlacklist
	refresh   domain.RefreshTokenRepository
	tokens    TokenManager
	nowFunc   func() time.Time
}

// NewService constructs an auth service.
func NewService(users domain.UserRepository, blacklist domain.TokenBlacklist, refresh domain.RefreshTokenRepository, tokens TokenManager) *Service {
	return &Service{
		users:     users,
		blacklist: blacklist,
		refresh:   refresh,
		tokens:    tokens,
		nowFunc:   time.Now,
	}
}

// Register creates a new user and returns the persisted entity without a password hash.
func (s *Service) Register(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	password = strings.TrimSpace(password)
	if email == "" {
		return nil, errors.New("email is required")
	}
	if password == "" {
		return nil, errors.New("password is required")
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.nowFunc().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		IsActive:     true,
		PasswordHash: string(hashed),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return sanitizeUser(user), nil
}

// Login validates credentials and returns a fresh token pair plus the user.
// A missing account and a wrong password produce the same error.
func (s *Service) Login(ctx context.Context, creds domain.Credentials) (*domain.TokenPair, *domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(creds.Email))
	password := strings.TrimSpace(creds.Password)
	if email == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issue(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	return pair, sanitizeUser(user), nil
}

// VerifyToken validates a bearer token and returns the associated user.
// The blacklist is consulted before the signature is even parsed, so a
// revoked token is never accepted no matter how valid it still looks.
func (s *Service) VerifyToken(ctx context.Context, token string) (*domain.User, error) {
	revoked, err := s.blacklist.Contains(ctx, token)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}

	userID, err := s.tokens.Validate(token)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

// Logout blacklists the presented access token. A write failure surfaces to
// the caller; logout must not report success while the token stays valid.
// The paired refresh token is left untouched and ages out naturally.
func (s *Service) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.ErrTokenInvalid
	}
	return s.blacklist.Add(ctx, token, s.nowFunc().UTC())
}

// Refresh validates a refresh token and mints a new access/refresh pair.
// The old refresh token is not revoked.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	user, err := s.VerifyToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, user.ID)
}

// ChangePassword replaces the stored hash after checking the current password.
func (s *Service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	currentPassword = strings.TrimSpace(currentPassword)
	newPassword = strings.TrimSpace(newPassword)
	if newPassword == "" {
		return errors.New("new password is required")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return domain.ErrPasswordMismatch
	}
	if currentPassword == newPassword {
		return domain.ErrPasswordUnchanged
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.users.UpdatePassword(ctx, userID, string(hashed), s.nowFunc().UTC())
}

func (s *Service) issue(ctx context.Context, userID string) (*domain.TokenPair, error) {
	access, err := s.tokens.GenerateAccessToken(userID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.GenerateRefreshToken(userID)
	if err != nil {
		return nil, err
	}

	now := s.nowFunc().UTC()
	record := &domain.RefreshToken{
		ID:        uuid.NewString(),
		Token:     refresh,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokens.RefreshTokenTTL()),
	}
	if err := s.refresh.Create(ctx, record); err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}

func sanitizeUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	copy := *u
	copy.PasswordHash = ""
	return &copy
}
