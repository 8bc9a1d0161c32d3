package blog

import (
	"context"
	"testing"
	"time"

	authdomain "blogplatform/backend/internal/domain/auth"
	domain "blogplatform/backend/internal/domain/blog"

	"github.com/stretchr/testify/require"
)

type fakePostRepo struct {
	posts map[string]*domain.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]*domain.Post)}
}

func (r *fakePostRepo) Create(ctx context.Context, post *domain.Post) error {
	for _, existing := range r.posts {
		if existing.Slug == post.Slug {
			return domain.ErrDuplicateSlug
		}
	}
	clone := *post
	r.posts[post.ID] = &clone
	return nil
}

func (r *fakePostRepo) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	post, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	clone := *post
	return &clone, nil
}

func (r *fakePostRepo) List(ctx context.Context, filter domain.PostFilter) ([]*domain.Post, error) {
	var out []*domain.Post
	for _, post := range r.posts {
		if filter.AuthorID != "" && post.AuthorID != filter.AuthorID {
			continue
		}
		if filter.Tag != "" && !containsTag(post.Tags, filter.Tag) {
			continue
		}
		clone := *post
		out = append(out, &clone)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (r *fakePostRepo) Update(ctx context.Context, post *domain.Post) error {
	if _, ok := r.posts[post.ID]; !ok {
		return domain.ErrPostNotFound
	}
	clone := *post
	r.posts[post.ID] = &clone
	return nil
}

func (r *fakePostRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func containsTag(tags []string, tag string) bool {
	for _, candidate := range tags {
		if candidate == tag {
			return true
		}
	}
	return false
}

type fakeUserRepo struct {
	users map[string]*authdomain.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *authdomain.User) error { return nil }
func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*authdomain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, authdomain.ErrUserNotFound
}
func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*authdomain.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, authdomain.ErrUserNotFound
}
func (r *fakeUserRepo) List(ctx context.Context) ([]*authdomain.User, error) { return nil, nil }
func (r *fakeUserRepo) Update(ctx context.Context, user *authdomain.User) error {
	return nil
}
func (r *fakeUserRepo) Delete(ctx context.Context, id string) error { return nil }
func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error {
	return nil
}

func newTestService() (*Service, *fakePostRepo) {
	posts := newFakePostRepo()
	users := &fakeUserRepo{users: map[string]*authdomain.User{
		"author-1": {ID: "author-1", Email: "author@example.com"},
	}}
	return NewService(posts, users), posts
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"Understanding the Basics of REST APIs", "understanding-the-basics-of-rest-apis"},
		{"Tabs & Spaces!", "tabs--spaces"},
		{"  Trimmed Title  ", "trimmed-title"},
		{"C'est la vie", "cest-la-vie"},
		{"100% Go", "100-go"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Slugify(tc.title), "title %q", tc.title)
	}
}

func TestCreatePost(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	post, err := svc.Create(ctx, "author-1", CreateInput{
		Title:   "My First Post",
		Content: "Some content",
		Tags:    []string{"Go", "go", " web "},
	})
	require.NoError(t, err)
	require.Equal(t, "my-first-post", post.Slug)
	require.Equal(t, "author-1", post.AuthorID)
	require.Equal(t, []string{"go", "web"}, post.Tags)
	require.True(t, post.IsPublished)
}

func TestCreatePostRejectsLongTitle(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	long := "This title is far too long to be accepted by the platform"
	_, err := svc.Create(ctx, "author-1", CreateInput{Title: long, Content: "content"})
	require.Error(t, err)
}

func TestCreatePostRejectsDuplicateSlug(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "author-1", CreateInput{Title: "Same Title", Content: "a"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, "author-1", CreateInput{Title: "Same Title", Content: "b"})
	require.ErrorIs(t, err, domain.ErrDuplicateSlug)
}

func TestUpdatePostOnlyAuthor(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	post, err := svc.Create(ctx, "author-1", CreateInput{Title: "Original", Content: "content"})
	require.NoError(t, err)

	newTitle := "Edited"
	_, err = svc.Update(ctx, post.ID, "someone-else", UpdateInput{Title: &newTitle})
	require.ErrorIs(t, err, domain.ErrNotAuthor)

	updated, err := svc.Update(ctx, post.ID, "author-1", UpdateInput{Title: &newTitle})
	require.NoError(t, err)
	require.Equal(t, "Edited", updated.Title)
	require.Equal(t, "edited", updated.Slug)
}

func TestDeletePostOnlyAuthor(t *testing.T) {
	svc, posts := newTestService()
	ctx := context.Background()

	post, err := svc.Create(ctx, "author-1", CreateInput{Title: "Doomed", Content: "content"})
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(ctx, post.ID, "someone-else"), domain.ErrNotAuthor)
	require.NoError(t, svc.Delete(ctx, post.ID, "author-1"))
	require.Empty(t, posts.posts)
}

func TestListByAuthorEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "author-1", CreateInput{Title: "Post One", Content: "a"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "author-1", CreateInput{Title: "Post Two", Content: "b"})
	require.NoError(t, err)

	posts, err := svc.ListByAuthorEmail(ctx, "author@example.com", 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	_, err = svc.ListByAuthorEmail(ctx, "missing@example.com", 0)
	require.ErrorIs(t, err, authdomain.ErrUserNotFound)
}

func TestListByTag(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "author-1", CreateInput{Title: "Tagged", Content: "a", Tags: []string{"go"}})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "author-1", CreateInput{Title: "Untagged", Content: "b"})
	require.NoError(t, err)

	posts, err := svc.ListByTag(ctx, "Go")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, "Tagged", posts[0].Title)
}
