package blog

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	authdomain "blogplatform/backend/internal/domain/auth"
	domain "blogplatform/backend/internal/domain/blog"

	"github.com/google/uuid"
)

// Titles longer than this are rejected so slugs stay readable.
const maxTitleLength = 50

var slugStrip = regexp.MustCompile(`[^a-z0-9-]`)

// Service encapsulates post and tag use cases.
type Service struct {
	posts   domain.PostRepository
	users   authdomain.UserRepository
	nowFunc func() time.Time
}

// NewService constructs a blog service.
func NewService(posts domain.PostRepository, users authdomain.UserRepository) *Service {
	return &Service{
		posts:   posts,
		users:   users,
		nowFunc: time.Now,
	}
}

// CreateInput contains the payload required for post creation.
type CreateInput struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// UpdateInput encapsulates partial post updates.
type UpdateInput struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Tags    *[]string `json:"tags"`
}

// Create persists a new post authored by the given user.
func (s *Service) Create(ctx context.Context, authorID string, input CreateInput) (*domain.Post, error) {
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if title == "" {
		return nil, errors.New("title is required")
	}
	if content == "" {
		return nil, errors.New("content is required")
	}
	if len(title) > maxTitleLength {
		return nil, errors.New("title should not be more than 50 characters")
	}

	now := s.nowFunc().UTC()
	post := &domain.Post{
		ID:          uuid.NewString(),
		Title:       title,
		Content:     content,
		Slug:        Slugify(title),
		AuthorID:    authorID,
		Tags:        normalizeTags(input.Tags),
		IsPublished: true,
		PublishedAt: now,
		UpdatedAt:   now,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Get retrieves a single post by id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Post, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("post id is required")
	}
	return s.posts.GetByID(ctx, id)
}

// List returns posts, optionally filtered by a title substring and a limit.
func (s *Service) List(ctx context.Context, search string, limit int) ([]*domain.Post, error) {
	return s.posts.List(ctx, domain.PostFilter{
		Search: strings.TrimSpace(search),
		Limit:  limit,
	})
}

// ListByAuthor returns all posts authored by the given user.
func (s *Service) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error) {
	return s.posts.List(ctx, domain.PostFilter{AuthorID: authorID})
}

// ListByAuthorEmail resolves the author by email and returns their posts.
func (s *Service) ListByAuthorEmail(ctx context.Context, email string, limit int) ([]*domain.Post, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return nil, err
	}
	return s.posts.List(ctx, domain.PostFilter{AuthorID: user.ID, Limit: limit})
}

// ListByTag returns posts carrying the given tag name.
func (s *Service) ListByTag(ctx context.Context, tag string) ([]*domain.Post, error) {
	tag = strings.TrimSpace(strings.ToLower(tag))
	if tag == "" {
		return nil, errors.New("tag name is required")
	}
	return s.posts.List(ctx, domain.PostFilter{Tag: tag})
}

// Update modifies a post. Only the author may update it.
func (s *Service) Update(ctx context.Context, id, callerID string, input UpdateInput) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != callerID {
		return nil, domain.ErrNotAuthor
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, errors.New("title is required")
		}
		if len(title) > maxTitleLength {
			return nil, errors.New("title should not be more than 50 characters")
		}
		post.Title = title
		post.Slug = Slugify(title)
	}
	if input.Content != nil {
		content := strings.TrimSpace(*input.Content)
		if content == "" {
			return nil, errors.New("content is required")
		}
		post.Content = content
	}
	if input.Tags != nil {
		post.Tags = normalizeTags(*input.Tags)
	}

	post.UpdatedAt = s.nowFunc().UTC()
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes a post. Only the author may delete it.
func (s *Service) Delete(ctx context.Context, id, callerID string) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != callerID {
		return domain.ErrNotAuthor
	}
	return s.posts.Delete(ctx, id)
}

// Slugify turns a post title into a URL-friendly slug: lowercase, spaces
// replaced with hyphens, everything outside [a-z0-9-] stripped.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.ReplaceAll(slug, " ", "-")
	return slugStrip.ReplaceAllString(slug, "")
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(strings.ToLower(tag))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
