package graphql

import (
	"github.com/google/uuid"
	"github.com/graphql-go/graphql"

	"github.com/plumeworks/plume/internal/store/postgres"
	"github.com/plumeworks/plume/pkg/apierr"
)

func (s *Schema) defineQuery(t *schemaTypes) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"users": &graphql.Field{
				Type:    graphql.NewNonNull(t.userConn),
				Args:    connectionArgs(),
				Resolve: s.resolveUsers,
			},
			"posts": &graphql.Field{
				Type: graphql.NewNonNull(t.postConn),
				Args: withOrderBy(connectionArgs()),
				Resolve: s.resolvePosts,
			},
			"categories": &graphql.Field{
				Type:    graphql.NewNonNull(t.categoryConn),
				Args:    connectionArgs(),
				Resolve: s.resolveCategories,
			},
			"tags": &graphql.Field{
				Type:    graphql.NewNonNull(t.tagConn),
				Args:    connectionArgs(),
				Resolve: s.resolveTags,
			},
			"groups": &graphql.Field{
				Type:    graphql.NewNonNull(t.groupConn),
				Args:    connectionArgs(),
				Resolve: s.resolveGroups,
			},
			"comments": &graphql.Field{
				Type:    graphql.NewNonNull(t.commentConn),
				Args:    connectionArgs(),
				Resolve: s.resolveComments,
			},
			"userById": &graphql.Field{
				Type: t.user,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: s.resolveUserByID,
			},
			"postBySlug": &graphql.Field{
				Type: t.post,
				Args: graphql.FieldConfigArgument{
					"slug": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: s.resolvePostBySlug,
			},
		},
	})
}

func withOrderBy(args graphql.FieldConfigArgument) graphql.FieldConfigArgument {
	args["orderBy"] = &graphql.ArgumentConfig{
		Type:        graphql.String,
		Description: "Comma-separated field:direction pairs, e.g. \"createdAt:desc,title\"",
	}
	return args
}

func (s *Schema) resolveUsers(p graphql.ResolveParams) (any, error) {
	page, err := parsePageArgs(p.Args)
	if err != nil {
		return nil, s.fail(err)
	}
	total, err := s.store.CountUsers(p.Context)
	if err != nil {
		return nil, s.fail(err)
	}
	rows, err := s.store.ListUsersAfter(p.Context, page.After, page.First+1)
	if err != nil {
		return nil, s.fail(err)
	}
	nodes, hasNext := trimPage(rows, page.First)
	return connection(nodes, hasNext, total, func(u postgres.User) uuid.UUID { return u.ID }), nil
}

func (s *Schema) resolvePosts(p graphql.ResolveParams) (any, error) {
	page, err := parsePageArgs(p.Args)
	if err != nil {
		return nil, s.fail(err)
	}

	orderBy, _ := p.Args["orderBy"].(string)
	order, err := postgres.ParsePostOrderBy(orderBy)
	if err != nil {
		return nil, s.fail(apierr.InvalidOrderField(orderBy))
	}

	total, err := s.store.CountPosts(p.Context)
	if err != nil {
		return nil, s.fail(err)
	}
	rows, err := s.store.ListPostsPage(p.Context, postgres.ListPostsParams{
		After: page.After,
		Limit: page.First + 1,
		Order: order,
	})
	if err != nil {
		if apierr.IsNotFound(err) {
			// The cursor id no longer resolves to a row.
			return nil, s.fail(apierr.InvalidCursor())
		}
		return nil, s.fail(apierr.PostListFailed(err))
	}
	nodes, hasNext := trimPage(rows, page.First)
	return connection(nodes, hasNext, total, func(post postgres.Post) uuid.UUID { return post.ID }), nil
}

func (s *Schema) resolveCategories(p graphql.ResolveParams) (any, error) {
	page, err := parsePageArgs(p.Args)
	if err != nil {
		return nil, s.fail(err)
	}
	total, err := s.store.CountCategories(p.Context)
	if err != nil {
		return nil, s.fail(err)
	}
	rows, err := s.store.ListCategoriesAfter(p.Context, page.After, page.First+1)
	if err != nil {
		return nil, s.fail(err)
	}
	nodes, hasNext := trimPage(rows, page.First)
	return connection(nodes, hasNext, total, func(c postgres.Category) uuid.UUID { return c.ID }), nil
}

func (s *Schema) resolveTags(p graphql.ResolveParams) (any, error) {
	page, err := parsePageArgs(p.Args)
	if err != nil {
		return nil, s.fail(err)
	}
	total, err := s.store.CountTags(p.Context)
	if err != nil {
		return nil, s.fail(err)
	}
	rows, err := s.store.ListTagsAfter(p.Context, page.After, page.First+1)
	if err != nil {
		return nil, s.fail(err)
	}
	nodes, hasNext := trimPage(rows, page.First)
	return connection(nodes, hasNext, total, func(tg postgres.Tag) uuid.UUID { return tg.ID }), nil
}

func (s *Schema) resolveGroups(p graphql.ResolveParams) (any, error) {
	page, err := parsePageArgs(p.Args)
	if err != nil {
		return nil, s.fail(err)
	}
	total, err := s.store.CountGroups(p.Context)
	if err != nil {
		return nil, s.fail(err)
	}
	rows, err := s.store.ListGroupsAfter(p.Context, page.After, page.First+1)
	if err != nil {
		return nil, s.fail(err)
	}
	nodes, hasNext := trimPage(rows, page.First)
	return connection(nodes, hasNext, total, func(g postgres.Group) uuid.UUID { return g.ID }), nil
}

func (s *Schema) resolveComments(p graphql.ResolveParams) (any, error) {
	page, err := parsePageArgs(p.Args)
	if err != nil {
		return nil, s.fail(err)
	}
	total, err := s.store.CountComments(p.Context)
	if err != nil {
		return nil, s.fail(err)
	}
	rows, err := s.store.ListCommentsAfter(p.Context, page.After, page.First+1)
	if err != nil {
		return nil, s.fail(err)
	}
	nodes, hasNext := trimPage(rows, page.First)
	return connection(nodes, hasNext, total, func(c postgres.Comment) uuid.UUID { return c.ID }), nil
}

// resolveUserByID is nullable: an unknown id answers null, not an error.
func (s *Schema) resolveUserByID(p graphql.ResolveParams) (any, error) {
	raw, _ := p.Args["id"].(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, s.fail(apierr.InvalidID("user"))
	}
	user, err := s.store.GetUserByID(p.Context, id)
	if err != nil {
		if apierr.IsNotFound(err) {
			return nil, nil
		}
		return nil, s.fail(err)
	}
	return user, nil
}

func (s *Schema) resolvePostBySlug(p graphql.ResolveParams) (any, error) {
	slug, _ := p.Args["slug"].(string)
	post, err := s.store.GetPostBySlug(p.Context, slug)
	if err != nil {
		if apierr.IsNotFound(err) {
			return nil, nil
		}
		return nil, s.fail(err)
	}
	return post, nil
}

// --- nested fields ---

func (s *Schema) resolveUserProfile(p graphql.ResolveParams) (any, error) {
	u := p.Source.(postgres.User)
	profile, err := s.store.GetProfileByUserID(p.Context, u.ID)
	if err != nil {
		if apierr.IsNotFound(err) {
			return nil, nil
		}
		return nil, s.fail(err)
	}
	return profile, nil
}

func (s *Schema) resolveUserPosts(p graphql.ResolveParams) (any, error) {
	u := p.Source.(postgres.User)
	page, err := parsePageArgs(p.Args)
	if err != nil {
		return nil, s.fail(err)
	}
	total, err := s.store.CountPostsByAuthor(p.Context, u.ID)
	if err != nil {
		return nil, s.fail(err)
	}
	rows, err := s.store.ListPostsByAuthorAfter(p.Context, u.ID, page.After, page.First+1)
	if err != nil {
		return nil, s.fail(err)
	}
	nodes, hasNext := trimPage(rows, page.First)
	return connection(nodes, hasNext, total, func(post postgres.Post) uuid.UUID { return post.ID }), nil
}

func (s *Schema) resolvePostAuthor(p graphql.ResolveParams) (any, error) {
	post := p.Source.(postgres.Post)
	author, err := s.store.GetUserByID(p.Context, post.AuthorID)
	if err != nil {
		return nil, s.fail(err)
	}
	return author, nil
}

func (s *Schema) resolvePostCategories(p graphql.ResolveParams) (any, error) {
	post := p.Source.(postgres.Post)
	cats, err := s.store.ListCategoriesByPost(p.Context, post.ID)
	if err != nil {
		return nil, s.fail(err)
	}
	return cats, nil
}

func (s *Schema) resolvePostTags(p graphql.ResolveParams) (any, error) {
	post := p.Source.(postgres.Post)
	tags, err := s.store.ListTagsByPost(p.Context, post.ID)
	if err != nil {
		return nil, s.fail(err)
	}
	return tags, nil
}

func (s *Schema) resolvePostGroups(p graphql.ResolveParams) (any, error) {
	post := p.Source.(postgres.Post)
	groups, err := s.store.ListGroupsByPost(p.Context, post.ID)
	if err != nil {
		return nil, s.fail(err)
	}
	return groups, nil
}

func (s *Schema) resolvePostComments(p graphql.ResolveParams) (any, error) {
	post := p.Source.(postgres.Post)
	page, err := parsePageArgs(p.Args)
	if err != nil {
		return nil, s.fail(err)
	}
	total, err := s.store.CountCommentsByPost(p.Context, post.ID)
	if err != nil {
		return nil, s.fail(err)
	}
	rows, err := s.store.ListCommentsByPostAfter(p.Context, post.ID, page.After, page.First+1)
	if err != nil {
		return nil, s.fail(err)
	}
	nodes, hasNext := trimPage(rows, page.First)
	return connection(nodes, hasNext, total, func(c postgres.Comment) uuid.UUID { return c.ID }), nil
}

func (s *Schema) resolveCategoryPosts(p graphql.ResolveParams) (any, error) {
	cat := p.Source.(postgres.Category)
	page, err := parsePageArgs(p.Args)
	if err != nil {
		return nil, s.fail(err)
	}
	total, err := s.store.CountPostsByCategory(p.Context, cat.ID)
	if err != nil {
		return nil, s.fail(err)
	}
	rows, err := s.store.ListPostsByCategoryAfter(p.Context, cat.ID, page.After, page.First+1)
	if err != nil {
		return nil, s.fail(err)
	}
	nodes, hasNext := trimPage(rows, page.First)
	return connection(nodes, hasNext, total, func(post postgres.Post) uuid.UUID { return post.ID }), nil
}

func (s *Schema) resolveTagPosts(p graphql.ResolveParams) (any, error) {
	tg := p.Source.(postgres.Tag)
	page, err := parsePageArgs(p.Args)
	if err != nil {
		return nil, s.fail(err)
	}
	total, err := s.store.CountPostsByTag(p.Context, tg.ID)
	if err != nil {
		return nil, s.fail(err)
	}
	rows, err := s.store.ListPostsByTagAfter(p.Context, tg.ID, page.After, page.First+1)
	if err != nil {
		return nil, s.fail(err)
	}
	nodes, hasNext := trimPage(rows, page.First)
	return connection(nodes, hasNext, total, func(post postgres.Post) uuid.UUID { return post.ID }), nil
}

func (s *Schema) resolveGroupPosts(p graphql.ResolveParams) (any, error) {
	g := p.Source.(postgres.Group)
	page, err := parsePageArgs(p.Args)
	if err != nil {
		return nil, s.fail(err)
	}
	total, err := s.store.CountPostsByGroup(p.Context, g.ID)
	if err != nil {
		return nil, s.fail(err)
	}
	rows, err := s.store.ListPostsByGroupAfter(p.Context, g.ID, page.After, page.First+1)
	if err != nil {
		return nil, s.fail(err)
	}
	nodes, hasNext := trimPage(rows, page.First)
	return connection(nodes, hasNext, total, func(post postgres.Post) uuid.UUID { return post.ID }), nil
}
