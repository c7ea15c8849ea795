package graphql

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"

	"github.com/plumeworks/plume/internal/account"
	"github.com/plumeworks/plume/internal/auth"
	"github.com/plumeworks/plume/internal/blog"
	"github.com/plumeworks/plume/pkg/apierr"
)

func (s *Schema) defineMutation(t *schemaTypes) *graphql.Object {
	signUpInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SignUpInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"name":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"username": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	signInInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SignInInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"username": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	createUserInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateUserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"surname":  &graphql.InputObjectFieldConfig{Type: graphql.String},
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"username": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	createTagInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateTagInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	createCategoryInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateCategoryInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"color":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"isPrivate":   &graphql.InputObjectFieldConfig{Type: graphql.Boolean, DefaultValue: false},
		},
	})

	postArgs := graphql.FieldConfigArgument{
		"title":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
		"content":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
		"description": &graphql.ArgumentConfig{Type: graphql.String},
		"categories":  &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
		"tags":        &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
		"groups":      &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
		"format":      &graphql.ArgumentConfig{Type: t.postFormat, DefaultValue: "HTML"},
		"status":      &graphql.ArgumentConfig{Type: t.postStatus},
	}

	updatePostArgs := graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
	}
	for name, arg := range postArgs {
		updatePostArgs[name] = arg
	}

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"signUp": &graphql.Field{
				Type: graphql.NewNonNull(t.user),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(signUpInput)},
				},
				Resolve: s.resolveSignUp,
			},
			"signIn": &graphql.Field{
				Type: graphql.NewNonNull(t.user),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(signInInput)},
				},
				Resolve: s.resolveSignIn,
			},
			"createUser": &graphql.Field{
				Type: graphql.NewNonNull(t.user),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createUserInput)},
				},
				Resolve: s.resolveCreateUser,
			},
			"createPost": &graphql.Field{
				Type:    graphql.NewNonNull(t.post),
				Args:    postArgs,
				Resolve: s.resolveCreatePost,
			},
			"updatePost": &graphql.Field{
				Type:    graphql.NewNonNull(t.post),
				Args:    updatePostArgs,
				Resolve: s.resolveUpdatePost,
			},
			"createTag": &graphql.Field{
				Type: graphql.NewNonNull(t.tag),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createTagInput)},
				},
				Resolve: s.resolveCreateTag,
			},
			"createCategory": &graphql.Field{
				Type: graphql.NewNonNull(t.category),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createCategoryInput)},
				},
				Resolve: s.resolveCreateCategory,
			},
			"createComment": &graphql.Field{
				Type: graphql.NewNonNull(t.comment),
				Args: graphql.FieldConfigArgument{
					"postId":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"content": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: s.resolveCreateComment,
			},
		},
	})
}

// --- argument helpers ---

func inputMap(args map[string]any) map[string]any {
	if m, ok := args["input"].(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func stringArg(m map[string]any, key string) string {
	v, _ := m[key].(string)
	return v
}

func optStringArg(m map[string]any, key string) *string {
	if v, ok := m[key].(string); ok {
		return &v
	}
	return nil
}

func boolArg(m map[string]any, key string) bool {
	v, _ := m[key].(bool)
	return v
}

func stringListArg(m map[string]any, key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if str, ok := v.(string); ok {
			out = append(out, str)
		}
	}
	return out
}

// --- resolvers ---

func (s *Schema) resolveSignUp(p graphql.ResolveParams) (any, error) {
	in := inputMap(p.Args)
	user, err := s.accounts.SignUp(p.Context, account.SignUpInput{
		Email:    stringArg(in, "email"),
		Name:     stringArg(in, "name"),
		Password: stringArg(in, "password"),
		Username: stringArg(in, "username"),
	})
	if err != nil {
		return nil, s.fail(err)
	}
	return user, nil
}

// resolveSignIn authenticates and, when a session store is wired, issues
// the opaque session token as an HttpOnly cookie on the live response.
func (s *Schema) resolveSignIn(p graphql.ResolveParams) (any, error) {
	in := inputMap(p.Args)
	user, err := s.accounts.SignIn(p.Context, account.SignInInput{
		Email:    stringArg(in, "email"),
		Username: stringArg(in, "username"),
		Password: stringArg(in, "password"),
	})
	if err != nil {
		return nil, s.fail(err)
	}

	if s.sessions != nil {
		token, err := s.sessions.Create(p.Context, user.ID)
		if err != nil {
			return nil, s.fail(apierr.InternalError(err))
		}
		if rr, ok := auth.ResponderFrom(p.Context); ok {
			auth.SetSessionCookie(rr.W, s.sessionCookie, token, s.sessionTTL, s.cookieSecure)
		} else if s.logger != nil {
			s.logger.Warn("signIn without response writer; session cookie not set",
				slog.String("user_id", user.ID.String()))
		}
	}
	return user, nil
}

func (s *Schema) resolveCreateUser(p graphql.ResolveParams) (any, error) {
	in := inputMap(p.Args)
	user, err := s.accounts.CreateUser(p.Context, account.CreateUserInput{
		Name:     stringArg(in, "name"),
		Surname:  stringArg(in, "surname"),
		Email:    stringArg(in, "email"),
		Username: stringArg(in, "username"),
	})
	if err != nil {
		return nil, s.fail(err)
	}
	return user, nil
}

func postInputFromArgs(args map[string]any) blog.PostInput {
	return blog.PostInput{
		Title:       stringArg(args, "title"),
		Description: optStringArg(args, "description"),
		Content:     stringArg(args, "content"),
		Format:      blog.Format(stringArg(args, "format")),
		Status:      stringArg(args, "status"),
		Categories:  stringListArg(args, "categories"),
		Tags:        stringListArg(args, "tags"),
		Groups:      stringListArg(args, "groups"),
	}
}

func (s *Schema) resolveCreatePost(p graphql.ResolveParams) (any, error) {
	post, err := s.blog.CreatePost(p.Context, postInputFromArgs(p.Args))
	if err != nil {
		return nil, s.fail(err)
	}
	return post, nil
}

func (s *Schema) resolveUpdatePost(p graphql.ResolveParams) (any, error) {
	id, err := uuid.Parse(stringArg(p.Args, "id"))
	if err != nil {
		return nil, s.fail(apierr.InvalidID("post"))
	}
	post, err := s.blog.UpdatePost(p.Context, blog.UpdatePostInput{
		ID:        id,
		PostInput: postInputFromArgs(p.Args),
	})
	if err != nil {
		return nil, s.fail(err)
	}
	return post, nil
}

func (s *Schema) resolveCreateTag(p graphql.ResolveParams) (any, error) {
	in := inputMap(p.Args)
	tag, err := s.blog.CreateTag(p.Context, stringArg(in, "name"))
	if err != nil {
		return nil, s.fail(err)
	}
	return tag, nil
}

func (s *Schema) resolveCreateCategory(p graphql.ResolveParams) (any, error) {
	in := inputMap(p.Args)
	cat, err := s.blog.CreateCategory(p.Context, blog.CategoryInput{
		Name:        stringArg(in, "name"),
		Description: optStringArg(in, "description"),
		Color:       optStringArg(in, "color"),
		IsPrivate:   boolArg(in, "isPrivate"),
	})
	if err != nil {
		return nil, s.fail(err)
	}
	return cat, nil
}

func (s *Schema) resolveCreateComment(p graphql.ResolveParams) (any, error) {
	postID, err := uuid.Parse(stringArg(p.Args, "postId"))
	if err != nil {
		return nil, s.fail(apierr.InvalidID("post"))
	}
	comment, err := s.blog.CreateComment(p.Context, postID, stringArg(p.Args, "content"))
	if err != nil {
		return nil, s.fail(err)
	}
	return comment, nil
}
