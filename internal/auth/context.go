package auth

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type identityKey struct{}

// Identity is the authenticated variant of the per-request identity.
// Anonymous requests simply carry no Identity in their context; resolvers
// must branch on the ok result of IdentityFrom rather than probe fields.
type Identity struct {
	UserID uuid.UUID
	Email  string
	// AccessToken is set when the identity was resolved from a provider
	// session (Bearer token) rather than the session cookie.
	AccessToken string
}

// WithIdentity stores an Identity in the context.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom extracts the Identity from the context. ok is false for
// anonymous requests.
func IdentityFrom(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*Identity)
	return id, ok
}

type responderKey struct{}

// Responder carries the raw request/response pair through the context so
// that resolvers which issue cookies (signIn) can reach it.
type Responder struct {
	W http.ResponseWriter
	R *http.Request
}

// WithResponder stores the request/response pair in the context.
func WithResponder(ctx context.Context, rr *Responder) context.Context {
	return context.WithValue(ctx, responderKey{}, rr)
}

// ResponderFrom extracts the request/response pair from the context.
func ResponderFrom(ctx context.Context) (*Responder, bool) {
	rr, ok := ctx.Value(responderKey{}).(*Responder)
	return rr, ok
}
