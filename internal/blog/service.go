package blog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/plumeworks/plume/internal/auth"
	"github.com/plumeworks/plume/internal/store/postgres"
	"github.com/plumeworks/plume/pkg/apierr"
)

// Format selects how a submitted post body is interpreted.
type Format string

const (
	FormatHTML     Format = "HTML"
	FormatMarkdown Format = "MARKDOWN"
)

// maxSlugAttempts bounds the re-suffix retry loop on slug collisions.
const maxSlugAttempts = 25

// Queries is the slice of the store the post service needs.
type Queries interface {
	CreatePost(ctx context.Context, p postgres.CreatePostParams) (postgres.Post, error)
	UpdatePost(ctx context.Context, p postgres.UpdatePostParams) (postgres.Post, error)
	GetPostByID(ctx context.Context, id uuid.UUID) (postgres.Post, error)
	GetPostBySlug(ctx context.Context, slug string) (postgres.Post, error)
	UpsertCategoryBySlug(ctx context.Context, p postgres.UpsertCategoryParams) (postgres.Category, error)
	UpsertTagBySlug(ctx context.Context, p postgres.UpsertTagParams) (postgres.Tag, error)
	UpsertGroupBySlug(ctx context.Context, p postgres.UpsertGroupParams) (postgres.Group, error)
	LinkPostCategory(ctx context.Context, postID, categoryID uuid.UUID) error
	LinkPostTag(ctx context.Context, postID, tagID uuid.UUID) error
	LinkPostGroup(ctx context.Context, postID, groupID uuid.UUID) error
	CreateComment(ctx context.Context, p postgres.CreateCommentParams) (postgres.Comment, error)
}

// Store is the persistence port: the queries plus a transaction runner.
type Store interface {
	Queries
	InTx(ctx context.Context, fn func(Queries) error) error
}

// Service implements the content mutations: post creation and update with
// slug derivation and taxonomy connect-or-create, plus standalone taxonomy
// and comment creation.
type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

type PostInput struct {
	Title       string
	Description *string
	Content     string
	Format      Format
	Status      string
	Categories  []string
	Tags        []string
	Groups      []string
}

func (in *PostInput) validate() (*apierr.Error, string) {
	if strings.TrimSpace(in.Title) == "" {
		return apierr.TitleRequired(), ""
	}
	if strings.TrimSpace(in.Content) == "" {
		return apierr.ContentRequired(), ""
	}
	status := in.Status
	if status == "" {
		status = postgres.PostStatusDraft
	}
	switch status {
	case postgres.PostStatusDraft, postgres.PostStatusPublished,
		postgres.PostStatusBlocked, postgres.PostStatusDeleted:
	default:
		return apierr.InvalidRequestBody(), ""
	}
	return nil, status
}

// body returns the HTML to persist, rendering Markdown submissions.
func (in *PostInput) body() (string, error) {
	if in.Format == FormatMarkdown {
		return RenderMarkdown(in.Content)
	}
	return in.Content, nil
}

// CreatePost persists a post for the authenticated caller. The slug is
// derived from the title once, here; collisions are resolved by numbered
// suffixes retried against the unique constraint.
func (s *Service) CreatePost(ctx context.Context, in PostInput) (postgres.Post, error) {
	ident, ok := auth.IdentityFrom(ctx)
	if !ok {
		return postgres.Post{}, apierr.NotLoggedIn()
	}
	vErr, status := in.validate()
	if vErr != nil {
		return postgres.Post{}, vErr
	}
	in.Status = status

	content, err := in.body()
	if err != nil {
		return postgres.Post{}, apierr.PostCreateFailed(err)
	}

	base := Slugify(in.Title)
	if base == "" {
		return postgres.Post{}, apierr.TitleRequired()
	}

	var post postgres.Post
	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		slug := NumberedSlug(base, attempt)
		err := s.store.InTx(ctx, func(q Queries) error {
			p, err := q.CreatePost(ctx, postgres.CreatePostParams{
				ID:          postgres.NewID(),
				Title:       in.Title,
				Description: in.Description,
				Content:     content,
				Slug:        slug,
				Status:      in.Status,
				AuthorID:    ident.UserID,
			})
			if err != nil {
				return err
			}
			if err := s.link(ctx, q, p.ID, in); err != nil {
				return err
			}
			post = p
			return nil
		})
		if err == nil {
			return post, nil
		}
		if apierr.IsUniqueViolation(err, "posts_slug_key") {
			continue
		}
		return postgres.Post{}, apierr.PostCreateFailed(err)
	}
	return postgres.Post{}, apierr.PostCreateFailed(fmt.Errorf("no free slug after %d attempts for %q", maxSlugAttempts, base))
}

type UpdatePostInput struct {
	ID uuid.UUID
	PostInput
}

// UpdatePost rewrites a post the caller owns. The author never changes and
// the slug is never re-derived.
func (s *Service) UpdatePost(ctx context.Context, in UpdatePostInput) (postgres.Post, error) {
	ident, ok := auth.IdentityFrom(ctx)
	if !ok {
		return postgres.Post{}, apierr.NotLoggedIn()
	}
	vErr, status := in.validate()
	if vErr != nil {
		return postgres.Post{}, vErr
	}
	in.Status = status

	current, err := s.store.GetPostByID(ctx, in.ID)
	if err != nil {
		if apierr.IsNotFound(err) {
			return postgres.Post{}, apierr.PostNotFound()
		}
		return postgres.Post{}, apierr.PostUpdateFailed(err)
	}
	if current.AuthorID != ident.UserID {
		return postgres.Post{}, apierr.Forbidden()
	}

	content, err := in.body()
	if err != nil {
		return postgres.Post{}, apierr.PostUpdateFailed(err)
	}

	var post postgres.Post
	err = s.store.InTx(ctx, func(q Queries) error {
		p, err := q.UpdatePost(ctx, postgres.UpdatePostParams{
			ID:          in.ID,
			Title:       in.Title,
			Description: in.Description,
			Content:     content,
			Status:      in.Status,
		})
		if err != nil {
			return err
		}
		if err := s.link(ctx, q, p.ID, in.PostInput); err != nil {
			return err
		}
		post = p
		return nil
	})
	if err != nil {
		return postgres.Post{}, apierr.PostUpdateFailed(err)
	}
	return post, nil
}

// link connects the post to every supplied category/tag/group label,
// creating missing rows keyed by their server-derived slug. Repeating a
// label is a no-op, which is what makes the mutations idempotent.
func (s *Service) link(ctx context.Context, q Queries, postID uuid.UUID, in PostInput) error {
	for _, label := range in.Categories {
		slug := Slugify(label)
		if slug == "" {
			continue
		}
		cat, err := q.UpsertCategoryBySlug(ctx, postgres.UpsertCategoryParams{
			ID:   postgres.NewID(),
			Name: strings.TrimSpace(label),
			Slug: slug,
		})
		if err != nil {
			return fmt.Errorf("upsert category %q: %w", slug, err)
		}
		if err := q.LinkPostCategory(ctx, postID, cat.ID); err != nil {
			return fmt.Errorf("link category %q: %w", slug, err)
		}
	}
	for _, label := range in.Tags {
		slug := Slugify(label)
		if slug == "" {
			continue
		}
		tag, err := q.UpsertTagBySlug(ctx, postgres.UpsertTagParams{
			ID:   postgres.NewID(),
			Name: strings.TrimSpace(label),
			Slug: slug,
		})
		if err != nil {
			return fmt.Errorf("upsert tag %q: %w", slug, err)
		}
		if err := q.LinkPostTag(ctx, postID, tag.ID); err != nil {
			return fmt.Errorf("link tag %q: %w", slug, err)
		}
	}
	for _, label := range in.Groups {
		slug := Slugify(label)
		if slug == "" {
			continue
		}
		group, err := q.UpsertGroupBySlug(ctx, postgres.UpsertGroupParams{
			ID:   postgres.NewID(),
			Name: strings.TrimSpace(label),
			Slug: slug,
		})
		if err != nil {
			return fmt.Errorf("upsert group %q: %w", slug, err)
		}
		if err := q.LinkPostGroup(ctx, postID, group.ID); err != nil {
			return fmt.Errorf("link group %q: %w", slug, err)
		}
	}
	return nil
}

// CreateTag creates (or returns) the tag for a label, keyed by its slug.
func (s *Service) CreateTag(ctx context.Context, name string) (postgres.Tag, error) {
	slug := Slugify(name)
	if slug == "" {
		return postgres.Tag{}, apierr.NameRequired()
	}
	tag, err := s.store.UpsertTagBySlug(ctx, postgres.UpsertTagParams{
		ID:   postgres.NewID(),
		Name: strings.TrimSpace(name),
		Slug: slug,
	})
	if err != nil {
		return postgres.Tag{}, apierr.TagCreateFailed(err)
	}
	return tag, nil
}

type CategoryInput struct {
	Name        string
	Description *string
	Color       *string
	IsPrivate   bool
}

// CreateCategory creates (or returns) the category for a label.
func (s *Service) CreateCategory(ctx context.Context, in CategoryInput) (postgres.Category, error) {
	slug := Slugify(in.Name)
	if slug == "" {
		return postgres.Category{}, apierr.NameRequired()
	}
	cat, err := s.store.UpsertCategoryBySlug(ctx, postgres.UpsertCategoryParams{
		ID:          postgres.NewID(),
		Name:        strings.TrimSpace(in.Name),
		Slug:        slug,
		Description: in.Description,
		Color:       in.Color,
		IsPrivate:   in.IsPrivate,
	})
	if err != nil {
		return postgres.Category{}, apierr.CategoryCreateFailed(err)
	}
	return cat, nil
}

// CreateComment attaches a comment to an existing post.
func (s *Service) CreateComment(ctx context.Context, postID uuid.UUID, content string) (postgres.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return postgres.Comment{}, apierr.ContentRequired()
	}
	if _, err := s.store.GetPostByID(ctx, postID); err != nil {
		if apierr.IsNotFound(err) {
			return postgres.Comment{}, apierr.PostNotFound()
		}
		return postgres.Comment{}, apierr.CommentCreateFailed(err)
	}
	comment, err := s.store.CreateComment(ctx, postgres.CreateCommentParams{
		ID:      postgres.NewID(),
		PostID:  postID,
		Content: content,
	})
	if err != nil {
		return postgres.Comment{}, apierr.CommentCreateFailed(err)
	}
	return comment, nil
}
