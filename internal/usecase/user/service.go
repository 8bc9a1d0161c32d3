package user

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "blogplatform/backend/internal/domain/auth"
)

// Service provides profile management use cases.
type Service struct {
	repo    domain.UserRepository
	nowFunc func() time.Time
}

// NewService constructs a user service around the provided repository.
func NewService(repo domain.UserRepository) *Service {
	return &Service{
		repo:    repo,
		nowFunc: time.Now,
	}
}

// UpdateInput defines the payload to update a user profile.
type UpdateInput struct {
	Email          *string
	Bio            *string
	ProfilePicture *string
}

// List returns every registered user.
func (s *Service) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return sanitizeUsers(users), nil
}

// GetByEmail retrieves a single user by email.
func (s *Service) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, errors.New("email is required")
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

// Update modifies the caller's profile. Email changes keep uniqueness intact.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*input.Email))
		if email == "" {
			return nil, errors.New("email is required")
		}
		if email != user.Email {
			if existing, err := s.repo.GetByEmail(ctx, email); err == nil && existing.ID != user.ID {
				return nil, domain.ErrEmailExists
			} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
				return nil, err
			}
		}
		user.Email = email
	}
	if input.Bio != nil {
		user.Bio = strings.TrimSpace(*input.Bio)
	}
	if input.ProfilePicture != nil {
		user.ProfilePicture = strings.TrimSpace(*input.ProfilePicture)
	}

	user.UpdatedAt = s.nowFunc().UTC()
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

// Delete removes the caller's account. Owned posts go with it via cascade.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("user id is required")
	}
	return s.repo.Delete(ctx, id)
}

func sanitizeUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	copy := *u
	copy.PasswordHash = ""
	return &copy
}

func sanitizeUsers(items []*domain.User) []*domain.User {
	out := make([]*domain.User, 0, len(items))
	for _, item := range items {
		out = append(out, sanitizeUser(item))
	}
	return out
}
