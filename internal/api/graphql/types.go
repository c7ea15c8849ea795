package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/plumeworks/plume/internal/store/postgres"
)

// schemaTypes bundles every object type so the root query/mutation
// definitions can reference them.
type schemaTypes struct {
	user     *graphql.Object
	profile  *graphql.Object
	post     *graphql.Object
	category *graphql.Object
	tag      *graphql.Object
	group    *graphql.Object
	comment  *graphql.Object

	userConn     *graphql.Object
	postConn     *graphql.Object
	categoryConn *graphql.Object
	tagConn      *graphql.Object
	groupConn    *graphql.Object
	commentConn  *graphql.Object

	postStatus *graphql.Enum
	postFormat *graphql.Enum
}

var pageInfoType = graphql.NewObject(graphql.ObjectConfig{
	Name: "PageInfo",
	Fields: graphql.Fields{
		"endCursor":   &graphql.Field{Type: graphql.ID},
		"hasNextPage": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
	},
})

// connectionType builds the Edge and Connection objects for a node type.
// Edges and page info are plain maps, which graphql-go's default resolver
// handles; only the node itself carries typed field resolvers.
func connectionType(name string, node *graphql.Object) *graphql.Object {
	edge := graphql.NewObject(graphql.ObjectConfig{
		Name: name + "Edge",
		Fields: graphql.Fields{
			"cursor": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"node":   &graphql.Field{Type: graphql.NewNonNull(node)},
		},
	})
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name + "Connection",
		Fields: graphql.Fields{
			"totalCount": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"edges":      &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(edge)))},
			"pageInfo":   &graphql.Field{Type: graphql.NewNonNull(pageInfoType)},
		},
	})
}

// optional unwraps nullable text columns for the wire.
func optional(s *string) (any, error) {
	if s == nil {
		return nil, nil
	}
	return *s, nil
}

func (s *Schema) defineTypes() *schemaTypes {
	t := &schemaTypes{}

	t.postStatus = graphql.NewEnum(graphql.EnumConfig{
		Name: "PostStatus",
		Values: graphql.EnumValueConfigMap{
			"DRAFT":     &graphql.EnumValueConfig{Value: postgres.PostStatusDraft},
			"PUBLISHED": &graphql.EnumValueConfig{Value: postgres.PostStatusPublished},
			"BLOCKED":   &graphql.EnumValueConfig{Value: postgres.PostStatusBlocked},
			"DELETED":   &graphql.EnumValueConfig{Value: postgres.PostStatusDeleted},
		},
	})

	t.postFormat = graphql.NewEnum(graphql.EnumConfig{
		Name: "PostFormat",
		Values: graphql.EnumValueConfigMap{
			"HTML":     &graphql.EnumValueConfig{Value: "HTML"},
			"MARKDOWN": &graphql.EnumValueConfig{Value: "MARKDOWN"},
		},
	})

	t.profile = graphql.NewObject(graphql.ObjectConfig{
		Name: "Profile",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(postgres.Profile).ID.String(), nil
				},
			},
			"bio": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return optional(p.Source.(postgres.Profile).Bio)
				},
			},
			"picture": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return optional(p.Source.(postgres.Profile).Picture)
				},
			},
			"address": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return optional(p.Source.(postgres.Profile).Address)
				},
			},
			"postalCode": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return optional(p.Source.(postgres.Profile).PostalCode)
				},
			},
			"country": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return optional(p.Source.(postgres.Profile).Country)
				},
			},
			"city": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return optional(p.Source.(postgres.Profile).City)
				},
			},
			"province": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return optional(p.Source.(postgres.Profile).Province)
				},
			},
			"mobile": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return optional(p.Source.(postgres.Profile).Mobile)
				},
			},
		},
	})

	// The Account sub-entity is deliberately absent from User: credentials
	// never cross the API surface.
	t.user = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(postgres.User).ID.String(), nil
				},
			},
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(postgres.User).Name, nil
				},
			},
			"surname": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(postgres.User).Surname, nil
				},
			},
			"email": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(postgres.User).Email, nil
				},
			},
			"username": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(postgres.User).Username, nil
				},
			},
			"emailVerified": &graphql.Field{
				Type: graphql.DateTime,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if v := p.Source.(postgres.User).EmailVerified; v != nil {
						return *v, nil
					}
					return nil, nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.DateTime),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(postgres.User).CreatedAt, nil
				},
			},
			"modifiedAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.DateTime),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(postgres.User).ModifiedAt, nil
				},
			},
			"profile": &graphql.Field{
				Type:    t.profile,
				Resolve: s.resolveUserProfile,
			},
		},
	})

	t.comment = graphql.NewObject(graphql.ObjectConfig{
		Name: "Comment",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(postgres.Comment).ID.String(), nil
				},
			},
			"postId": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(postgres.Comment).PostID.String(), nil
				},
			},
			"content": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(postgres.Comment).Content, nil
				},
			},
			"isBlocked": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(postgres.Comment).IsBlocked, nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.DateTime),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(postgres.Comment).CreatedAt, nil
				},
			},
		},
	})

	t.category = graphql.NewObject(graphql.ObjectConfig{
		Name: "Category",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(postgres.Category).ID.String(), nil
				},
			},
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(postgres.Category).Name, nil
				},
			},
			"slug": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(postgres.Category).Slug, nil
				},
			},
			"description": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return optional(p.Source.(postgres.Category).Description)
				},
			},
			"color": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return optional(p.Source.(postgres.Category).Color)
				},
			},
			"isPrivate": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(postgres.Category).IsPrivate, nil
				},
			},
		},
	})

	t.tag = graphql.NewObject(graphql.ObjectConfig{
		Name: "Tag",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(postgres.Tag).ID.String(), nil
				},
			},
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(postgres.Tag).Name, nil
				},
			},
			"slug": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(postgres.Tag).Slug, nil
				},
			},
		},
	})

	t.group = graphql.NewObject(graphql.ObjectConfig{
		Name: "Group",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(postgres.Group).ID.String(), nil
				},
			},
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(postgres.Group).Name, nil
				},
			},
			"slug": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(postgres.Group).Slug, nil
				},
			},
			"description": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return optional(p.Source.(postgres.Group).Description)
				},
			},
			"isPrivate": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(postgres.Group).IsPrivate, nil
				},
			},
		},
	})

	t.post = graphql.NewObject(graphql.ObjectConfig{
		Name: "Post",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(postgres.Post).ID.String(), nil
				},
			},
			"title": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(postgres.Post).Title, nil
				},
			},
			"description": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return optional(p.Source.(postgres.Post).Description)
				},
			},
			"content": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(postgres.Post).Content, nil
				},
			},
			"slug": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(postgres.Post).Slug, nil
				},
			},
			"status": &graphql.Field{
				Type: graphql.NewNonNull(t.postStatus),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(postgres.Post).Status, nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.DateTime),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(postgres.Post).CreatedAt, nil
				},
			},
			"modifiedAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.DateTime),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(postgres.Post).ModifiedAt, nil
				},
			},
			"author": &graphql.Field{
				Type:    graphql.NewNonNull(t.user),
				Resolve: s.resolvePostAuthor,
			},
			"categories": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t.category))),
				Resolve: s.resolvePostCategories,
			},
			"tags": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t.tag))),
				Resolve: s.resolvePostTags,
			},
			"groups": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t.group))),
				Resolve: s.resolvePostGroups,
			},
		},
	})

	t.userConn = connectionType("User", t.user)
	t.postConn = connectionType("Post", t.post)
	t.categoryConn = connectionType("Category", t.category)
	t.tagConn = connectionType("Tag", t.tag)
	t.groupConn = connectionType("Group", t.group)
	t.commentConn = connectionType("Comment", t.comment)

	// Connection fields close a type cycle (User -> PostConnection -> Post
	// -> User), so they attach after all objects exist.
	t.user.AddFieldConfig("posts", &graphql.Field{
		Type:    graphql.NewNonNull(t.postConn),
		Args:    connectionArgs(),
		Resolve: s.resolveUserPosts,
	})
	t.post.AddFieldConfig("comments", &graphql.Field{
		Type:    graphql.NewNonNull(t.commentConn),
		Args:    connectionArgs(),
		Resolve: s.resolvePostComments,
	})
	t.category.AddFieldConfig("posts", &graphql.Field{
		Type:    graphql.NewNonNull(t.postConn),
		Args:    connectionArgs(),
		Resolve: s.resolveCategoryPosts,
	})
	t.tag.AddFieldConfig("posts", &graphql.Field{
		Type:    graphql.NewNonNull(t.postConn),
		Args:    connectionArgs(),
		Resolve: s.resolveTagPosts,
	})
	t.group.AddFieldConfig("posts", &graphql.Field{
		Type:    graphql.NewNonNull(t.postConn),
		Args:    connectionArgs(),
		Resolve: s.resolveGroupPosts,
	})

	return t
}
