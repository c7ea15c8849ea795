package blog

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plumeworks/plume/internal/auth"
	"github.com/plumeworks/plume/internal/store/postgres"
	"github.com/plumeworks/plume/pkg/apierr"
)

// fakeStore is an in-memory Store keyed the same way the schema is: posts
// by slug, taxonomy by slug, links by composite key.
type fakeStore struct {
	posts      map[string]postgres.Post // by slug
	postsByID  map[uuid.UUID]postgres.Post
	categories map[string]postgres.Category // by slug
	tags       map[string]postgres.Tag
	groups     map[string]postgres.Group
	comments   []postgres.Comment
	catLinks   map[[2]uuid.UUID]bool
	tagLinks   map[[2]uuid.UUID]bool
	groupLinks map[[2]uuid.UUID]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		posts:      map[string]postgres.Post{},
		postsByID:  map[uuid.UUID]postgres.Post{},
		categories: map[string]postgres.Category{},
		tags:       map[string]postgres.Tag{},
		groups:     map[string]postgres.Group{},
		catLinks:   map[[2]uuid.UUID]bool{},
		tagLinks:   map[[2]uuid.UUID]bool{},
		groupLinks: map[[2]uuid.UUID]bool{},
	}
}

func (f *fakeStore) InTx(ctx context.Context, fn func(Queries) error) error {
	return fn(f)
}

func (f *fakeStore) CreatePost(_ context.Context, p postgres.CreatePostParams) (postgres.Post, error) {
	if _, exists := f.posts[p.Slug]; exists {
		return postgres.Post{}, &pgconn.PgError{Code: "23505", ConstraintName: "posts_slug_key"}
	}
	post := postgres.Post{
		ID: p.ID, Title: p.Title, Description: p.Description, Content: p.Content,
		Slug: p.Slug, Status: p.Status, AuthorID: p.AuthorID,
	}
	f.posts[p.Slug] = post
	f.postsByID[p.ID] = post
	return post, nil
}

func (f *fakeStore) UpdatePost(_ context.Context, p postgres.UpdatePostParams) (postgres.Post, error) {
	post, ok := f.postsByID[p.ID]
	if !ok {
		return postgres.Post{}, pgx.ErrNoRows
	}
	post.Title = p.Title
	post.Description = p.Description
	post.Content = p.Content
	post.Status = p.Status
	f.postsByID[p.ID] = post
	f.posts[post.Slug] = post
	return post, nil
}

func (f *fakeStore) GetPostByID(_ context.Context, id uuid.UUID) (postgres.Post, error) {
	post, ok := f.postsByID[id]
	if !ok {
		return postgres.Post{}, pgx.ErrNoRows
	}
	return post, nil
}

func (f *fakeStore) GetPostBySlug(_ context.Context, slug string) (postgres.Post, error) {
	post, ok := f.posts[slug]
	if !ok {
		return postgres.Post{}, pgx.ErrNoRows
	}
	return post, nil
}

func (f *fakeStore) UpsertCategoryBySlug(_ context.Context, p postgres.UpsertCategoryParams) (postgres.Category, error) {
	if existing, ok := f.categories[p.Slug]; ok {
		return existing, nil
	}
	cat := postgres.Category{ID: p.ID, Name: p.Name, Slug: p.Slug, Description: p.Description, Color: p.Color, IsPrivate: p.IsPrivate}
	f.categories[p.Slug] = cat
	return cat, nil
}

func (f *fakeStore) UpsertTagBySlug(_ context.Context, p postgres.UpsertTagParams) (postgres.Tag, error) {
	if existing, ok := f.tags[p.Slug]; ok {
		return existing, nil
	}
	tag := postgres.Tag{ID: p.ID, Name: p.Name, Slug: p.Slug}
	f.tags[p.Slug] = tag
	return tag, nil
}

func (f *fakeStore) UpsertGroupBySlug(_ context.Context, p postgres.UpsertGroupParams) (postgres.Group, error) {
	if existing, ok := f.groups[p.Slug]; ok {
		return existing, nil
	}
	group := postgres.Group{ID: p.ID, Name: p.Name, Slug: p.Slug, Description: p.Description, IsPrivate: p.IsPrivate}
	f.groups[p.Slug] = group
	return group, nil
}

func (f *fakeStore) LinkPostCategory(_ context.Context, postID, categoryID uuid.UUID) error {
	f.catLinks[[2]uuid.UUID{postID, categoryID}] = true
	return nil
}

func (f *fakeStore) LinkPostTag(_ context.Context, postID, tagID uuid.UUID) error {
	f.tagLinks[[2]uuid.UUID{postID, tagID}] = true
	return nil
}

func (f *fakeStore) LinkPostGroup(_ context.Context, postID, groupID uuid.UUID) error {
	f.groupLinks[[2]uuid.UUID{postID, groupID}] = true
	return nil
}

func (f *fakeStore) CreateComment(_ context.Context, p postgres.CreateCommentParams) (postgres.Comment, error) {
	c := postgres.Comment{ID: p.ID, PostID: p.PostID, Content: p.Content}
	f.comments = append(f.comments, c)
	return c, nil
}

func authedCtx(userID uuid.UUID) context.Context {
	return auth.WithIdentity(context.Background(), &auth.Identity{
		UserID: userID,
		Email:  "author@example.com",
	})
}

func errCode(t *testing.T, err error) apierr.Code {
	t.Helper()
	apiErr, ok := err.(*apierr.Error)
	require.True(t, ok, "expected *apierr.Error, got %T: %v", err, err)
	return apiErr.Code()
}

func TestCreatePost_RequiresIdentity(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, slog.Default())

	_, err := svc.CreatePost(context.Background(), PostInput{Title: "T", Content: "<p>c</p>"})
	require.Error(t, err)
	assert.Equal(t, apierr.CodeNotLoggedIn, errCode(t, err))
	assert.Empty(t, store.posts, "no post row may be created for anonymous callers")
}

func TestCreatePost_AuthorComesFromIdentity(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, slog.Default())
	userID := postgres.NewID()

	post, err := svc.CreatePost(authedCtx(userID), PostInput{
		Title:   "Hello World Example",
		Content: "<p>hi</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, userID, post.AuthorID)
	assert.Equal(t, "hello-world-example", post.Slug)
	assert.Equal(t, postgres.PostStatusDraft, post.Status)
}

func TestCreatePost_SlugCollisionGetsSuffix(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, slog.Default())
	userID := postgres.NewID()

	first, err := svc.CreatePost(authedCtx(userID), PostInput{Title: "Hello World", Content: "<p>1</p>"})
	require.NoError(t, err)
	second, err := svc.CreatePost(authedCtx(userID), PostInput{Title: "Hello World", Content: "<p>2</p>"})
	require.NoError(t, err)

	assert.Equal(t, "hello-world", first.Slug)
	assert.Equal(t, "hello-world-2", second.Slug)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCreatePost_TaxonomyIsIdempotent(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, slog.Default())
	userID := postgres.NewID()

	_, err := svc.CreatePost(authedCtx(userID), PostInput{
		Title: "First", Content: "<p>1</p>",
		Categories: []string{"Go Programming"},
		Tags:       []string{"databases", "Databases"},
	})
	require.NoError(t, err)
	_, err = svc.CreatePost(authedCtx(userID), PostInput{
		Title: "Second", Content: "<p>2</p>",
		Categories: []string{"go programming"},
		Tags:       []string{"databases"},
	})
	require.NoError(t, err)

	assert.Len(t, store.categories, 1, "same label must connect, not duplicate")
	assert.Len(t, store.tags, 1, "labels differing only in case must share a tag")
	assert.Contains(t, store.categories, "go-programming")
	assert.Contains(t, store.tags, "databases")
}

func TestCreatePost_RendersMarkdown(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, slog.Default())

	post, err := svc.CreatePost(authedCtx(postgres.NewID()), PostInput{
		Title:   "Markdown Post",
		Content: "Some **bold** text.",
		Format:  FormatMarkdown,
	})
	require.NoError(t, err)
	assert.Contains(t, post.Content, "<strong>bold</strong>")
}

func TestCreatePost_Validation(t *testing.T) {
	svc := NewService(newFakeStore(), slog.Default())
	ctx := authedCtx(postgres.NewID())

	_, err := svc.CreatePost(ctx, PostInput{Title: "", Content: "<p>c</p>"})
	assert.Equal(t, apierr.CodeTitleRequired, errCode(t, err))

	_, err = svc.CreatePost(ctx, PostInput{Title: "T", Content: "   "})
	assert.Equal(t, apierr.CodeContentRequired, errCode(t, err))
}

func TestUpdatePost_OwnershipEnforced(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, slog.Default())
	owner := postgres.NewID()
	intruder := postgres.NewID()

	post, err := svc.CreatePost(authedCtx(owner), PostInput{Title: "Mine", Content: "<p>v1</p>"})
	require.NoError(t, err)

	_, err = svc.UpdatePost(authedCtx(intruder), UpdatePostInput{
		ID:        post.ID,
		PostInput: PostInput{Title: "Stolen", Content: "<p>v2</p>"},
	})
	require.Error(t, err)
	assert.Equal(t, apierr.CodeForbidden, errCode(t, err))
	assert.Equal(t, "Mine", store.postsByID[post.ID].Title)

	updated, err := svc.UpdatePost(authedCtx(owner), UpdatePostInput{
		ID:        post.ID,
		PostInput: PostInput{Title: "Mine v2", Content: "<p>v2</p>"},
	})
	require.NoError(t, err)
	assert.Equal(t, owner, updated.AuthorID, "author must never be restamped")
	assert.Equal(t, post.Slug, updated.Slug, "slug is immutable after creation")
}

func TestUpdatePost_UnknownPost(t *testing.T) {
	svc := NewService(newFakeStore(), slog.Default())

	_, err := svc.UpdatePost(authedCtx(postgres.NewID()), UpdatePostInput{
		ID:        postgres.NewID(),
		PostInput: PostInput{Title: "T", Content: "<p>c</p>"},
	})
	assert.Equal(t, apierr.CodePostNotFound, errCode(t, err))
}

func TestCreateTag_CanonicalizesLabel(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, slog.Default())

	tag, err := svc.CreateTag(context.Background(), "  Distributed Systems ")
	require.NoError(t, err)
	assert.Equal(t, "distributed-systems", tag.Slug)
	assert.Equal(t, "Distributed Systems", tag.Name)

	again, err := svc.CreateTag(context.Background(), "distributed systems")
	require.NoError(t, err)
	assert.Equal(t, tag.ID, again.ID, "second create must connect to the same row")
}

func TestCreateComment_RequiresExistingPost(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, slog.Default())

	_, err := svc.CreateComment(context.Background(), postgres.NewID(), "nice post")
	assert.Equal(t, apierr.CodePostNotFound, errCode(t, err))

	post, err := svc.CreatePost(authedCtx(postgres.NewID()), PostInput{Title: "P", Content: "<p>c</p>"})
	require.NoError(t, err)

	comment, err := svc.CreateComment(context.Background(), post.ID, "nice post")
	require.NoError(t, err)
	assert.Equal(t, post.ID, comment.PostID)
}
