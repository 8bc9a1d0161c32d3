package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "blogplatform/backend/internal/domain/auth"
	"blogplatform/backend/internal/infrastructure/token"
	authusecase "blogplatform/backend/internal/usecase/auth"

	"github.com/stretchr/testify/require"
)

type memUserRepo struct {
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) error {
	if _, ok := r.byEmail[user.Email]; ok {
		return domain.ErrEmailExists
	}
	clone := *user
	r.byID[user.ID] = &clone
	r.byEmail[user.Email] = &clone
	return nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *memUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memUserRepo) Update(ctx context.Context, user *domain.User) error {
	existing, ok := r.byID[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byEmail, existing.Email)
	clone := *user
	r.byID[user.ID] = &clone
	r.byEmail[user.Email] = &clone
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, id string) error {
	user, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byEmail, user.Email)
	delete(r.byID, id)
	return nil
}

func (r *memUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error {
	user, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = updatedAt
	return nil
}

type memBlacklist struct {
	tokens map[string]time.Time
	addErr error
}

func newMemBlacklist() *memBlacklist {
	return &memBlacklist{tokens: make(map[string]time.Time)}
}

func (b *memBlacklist) Add(ctx context.Context, token string, revokedAt time.Time) error {
	if b.addErr != nil {
		return b.addErr
	}
	b.tokens[token] = revokedAt
	return nil
}

func (b *memBlacklist) Contains(ctx context.Context, token string) (bool, error) {
	_, ok := b.tokens[token]
	return ok, nil
}

type memRefreshRepo struct {
	records []*domain.RefreshToken
}

func (r *memRefreshRepo) Create(ctx context.Context, token *domain.RefreshToken) error {
	clone := *token
	r.records = append(r.records, &clone)
	return nil
}

func newTestService(t *testing.T) (*authusecase.Service, *memUserRepo, *memBlacklist, *memRefreshRepo) {
	t.Helper()
	users := newMemUserRepo()
	blacklist := newMemBlacklist()
	refresh := &memRefreshRepo{}
	tokens := token.NewJWTManager("test-secret", 15*time.Minute, 7*24*time.Hour, "test")
	return authusecase.NewService(users, blacklist, refresh, tokens), users, blacklist, refresh
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _, refresh := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alice@Example.com", "password1")
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", user.Email)
	require.Empty(t, user.PasswordHash)

	pair, loggedIn, err := svc.Login(ctx, domain.Credentials{Email: "alice@example.com", Password: "password1"})
	require.NoError(t, err)
	require.Equal(t, user.ID, loggedIn.ID)
	require.Equal(t, "bearer", pair.TokenType)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	// Issued refresh tokens get recorded.
	require.Len(t, refresh.records, 1)
	require.Equal(t, pair.RefreshToken, refresh.records[0].Token)
	require.Equal(t, user.ID, refresh.records[0].UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "bob@example.com", "password1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "bob@example.com", "password2")
	require.ErrorIs(t, err, domain.ErrEmailExists)
}

func TestLoginEnumerationResistance(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "carol@example.com", "rightpassword")
	require.NoError(t, err)

	_, _, wrongPassword := svc.Login(ctx, domain.Credentials{Email: "carol@example.com", Password: "wrongpassword"})
	_, _, unknownUser := svc.Login(ctx, domain.Credentials{Email: "nobody@example.com", Password: "whatever"})

	require.ErrorIs(t, wrongPassword, domain.ErrInvalidCredentials)
	require.ErrorIs(t, unknownUser, domain.ErrInvalidCredentials)
	require.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestVerifyTokenRoundTrip(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "dave@example.com", "password1")
	require.NoError(t, err)

	pair, _, err := svc.Login(ctx, domain.Credentials{Email: "dave@example.com", Password: "password1"})
	require.NoError(t, err)

	verified, err := svc.VerifyToken(ctx, pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, verified.ID)
}

func TestVerifyTokenRejectsRevoked(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "erin@example.com", "password1")
	require.NoError(t, err)

	pair, _, err := svc.Login(ctx, domain.Credentials{Email: "erin@example.com", Password: "password1"})
	require.NoError(t, err)

	// The token is still cryptographically valid; revocation alone must
	// keep it out.
	require.NoError(t, svc.Logout(ctx, pair.AccessToken))

	_, err = svc.VerifyToken(ctx, pair.AccessToken)
	require.ErrorIs(t, err, domain.ErrTokenRevoked)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	users := newMemUserRepo()
	blacklist := newMemBlacklist()
	refresh := &memRefreshRepo{}
	tokens := token.NewJWTManager("test-secret", -time.Second, -time.Second, "test")
	svc := authusecase.NewService(users, blacklist, refresh, tokens)
	ctx := context.Background()

	_, err := svc.Register(ctx, "frank@example.com", "password1")
	require.NoError(t, err)

	pair, _, err := svc.Login(ctx, domain.Credentials{Email: "frank@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.VerifyToken(ctx, pair.AccessToken)
	require.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerifyTokenRejectsDeletedUser(t *testing.T) {
	svc, users, _, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "grace@example.com", "password1")
	require.NoError(t, err)

	pair, _, err := svc.Login(ctx, domain.Credentials{Email: "grace@example.com", Password: "password1"})
	require.NoError(t, err)

	require.NoError(t, users.Delete(ctx, user.ID))

	_, err = svc.VerifyToken(ctx, pair.AccessToken)
	require.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestRefreshPreservesSubject(t *testing.T) {
	svc, _, _, refresh := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "heidi@example.com", "password1")
	require.NoError(t, err)

	pair, _, err := svc.Login(ctx, domain.Credentials{Email: "heidi@example.com", Password: "password1"})
	require.NoError(t, err)

	fresh, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, "bearer", fresh.TokenType)

	verified, err := svc.VerifyToken(ctx, fresh.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, verified.ID)

	// The prior refresh token is not revoked by a refresh; it stays usable
	// until natural expiry.
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.Len(t, refresh.records, 3)
}

func TestRefreshRejectsRevokedToken(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "ivan@example.com", "password1")
	require.NoError(t, err)

	pair, _, err := svc.Login(ctx, domain.Credentials{Email: "ivan@example.com", Password: "password1"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, pair.RefreshToken))

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, domain.ErrTokenRevoked)
}

func TestLogoutSurfacesStoreFailure(t *testing.T) {
	svc, _, blacklist, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "judy@example.com", "password1")
	require.NoError(t, err)

	pair, _, err := svc.Login(ctx, domain.Credentials{Email: "judy@example.com", Password: "password1"})
	require.NoError(t, err)

	blacklist.addErr = errors.New("store unavailable")
	err = svc.Logout(ctx, pair.AccessToken)
	require.Error(t, err)

	// The failed revocation must not leave the token half-revoked.
	blacklist.addErr = nil
	_, err = svc.VerifyToken(ctx, pair.AccessToken)
	require.NoError(t, err)
}

func TestChangePassword(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "kate@example.com", "oldpassword")
	require.NoError(t, err)

	require.ErrorIs(t, svc.ChangePassword(ctx, user.ID, "wrong", "newpassword"), domain.ErrPasswordMismatch)
	require.ErrorIs(t, svc.ChangePassword(ctx, user.ID, "oldpassword", "oldpassword"), domain.ErrPasswordUnchanged)
	require.NoError(t, svc.ChangePassword(ctx, user.ID, "oldpassword", "newpassword"))

	_, _, err = svc.Login(ctx, domain.Credentials{Email: "kate@example.com", Password: "oldpassword"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, domain.Credentials{Email: "kate@example.com", Password: "newpassword"})
	require.NoError(t, err)
}
