// Package graphql builds the GraphQL schema in Go and executes queries
// against it. Types and resolvers are hand-written; there is no generation
// step.
package graphql

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"

	"github.com/plumeworks/plume/internal/account"
	"github.com/plumeworks/plume/internal/auth"
	"github.com/plumeworks/plume/internal/blog"
	"github.com/plumeworks/plume/internal/store/postgres"
)

// Reader is the read side of the store the query resolvers use.
type Reader interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (postgres.User, error)
	GetProfileByUserID(ctx context.Context, userID uuid.UUID) (postgres.Profile, error)
	CountUsers(ctx context.Context) (int64, error)
	ListUsersAfter(ctx context.Context, after *uuid.UUID, limit int32) ([]postgres.User, error)

	GetPostBySlug(ctx context.Context, slug string) (postgres.Post, error)
	CountPosts(ctx context.Context) (int64, error)
	ListPostsPage(ctx context.Context, p postgres.ListPostsParams) ([]postgres.Post, error)
	CountPostsByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)
	ListPostsByAuthorAfter(ctx context.Context, authorID uuid.UUID, after *uuid.UUID, limit int32) ([]postgres.Post, error)
	CountPostsByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
	ListPostsByCategoryAfter(ctx context.Context, categoryID uuid.UUID, after *uuid.UUID, limit int32) ([]postgres.Post, error)
	CountPostsByTag(ctx context.Context, tagID uuid.UUID) (int64, error)
	ListPostsByTagAfter(ctx context.Context, tagID uuid.UUID, after *uuid.UUID, limit int32) ([]postgres.Post, error)
	CountPostsByGroup(ctx context.Context, groupID uuid.UUID) (int64, error)
	ListPostsByGroupAfter(ctx context.Context, groupID uuid.UUID, after *uuid.UUID, limit int32) ([]postgres.Post, error)

	CountCategories(ctx context.Context) (int64, error)
	ListCategoriesAfter(ctx context.Context, after *uuid.UUID, limit int32) ([]postgres.Category, error)
	ListCategoriesByPost(ctx context.Context, postID uuid.UUID) ([]postgres.Category, error)
	CountTags(ctx context.Context) (int64, error)
	ListTagsAfter(ctx context.Context, after *uuid.UUID, limit int32) ([]postgres.Tag, error)
	ListTagsByPost(ctx context.Context, postID uuid.UUID) ([]postgres.Tag, error)
	CountGroups(ctx context.Context) (int64, error)
	ListGroupsAfter(ctx context.Context, after *uuid.UUID, limit int32) ([]postgres.Group, error)
	ListGroupsByPost(ctx context.Context, postID uuid.UUID) ([]postgres.Group, error)

	CountComments(ctx context.Context) (int64, error)
	ListCommentsAfter(ctx context.Context, after *uuid.UUID, limit int32) ([]postgres.Comment, error)
	CountCommentsByPost(ctx context.Context, postID uuid.UUID) (int64, error)
	ListCommentsByPostAfter(ctx context.Context, postID uuid.UUID, after *uuid.UUID, limit int32) ([]postgres.Comment, error)
}

// Config carries everything the schema's resolvers depend on.
type Config struct {
	Store    Reader
	Blog     *blog.Service
	Accounts *account.Service

	// Sessions may be nil; signIn then authenticates without issuing a
	// cookie.
	Sessions      auth.SessionStore
	SessionCookie string
	SessionTTL    time.Duration
	CookieSecure  bool

	Logger *slog.Logger
}

// Schema holds the compiled schema plus the resolver dependencies.
type Schema struct {
	schema   graphql.Schema
	store    Reader
	blog     *blog.Service
	accounts *account.Service

	sessions      auth.SessionStore
	sessionCookie string
	sessionTTL    time.Duration
	cookieSecure  bool

	logger *slog.Logger
}

func NewSchema(cfg Config) (*Schema, error) {
	s := &Schema{
		store:         cfg.Store,
		blog:          cfg.Blog,
		accounts:      cfg.Accounts,
		sessions:      cfg.Sessions,
		sessionCookie: cfg.SessionCookie,
		sessionTTL:    cfg.SessionTTL,
		cookieSecure:  cfg.CookieSecure,
		logger:        cfg.Logger,
	}

	types := s.defineTypes()

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    s.defineQuery(types),
		Mutation: s.defineMutation(types),
	})
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}
	s.schema = schema
	return s, nil
}

// Do executes one GraphQL request. The context carries the caller's
// identity (and response writer) as placed there by the HTTP middleware.
func (s *Schema) Do(ctx context.Context, query string, variables map[string]any, operationName string) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         s.schema,
		RequestString:  query,
		VariableValues: variables,
		OperationName:  operationName,
		Context:        ctx,
	})
}
