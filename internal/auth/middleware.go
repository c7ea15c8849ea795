package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/plumeworks/plume/internal/store/postgres"
)

// UserLookup is the slice of the store the middleware needs to turn claims
// and session tokens into user rows.
type UserLookup interface {
	GetUserByEmail(ctx context.Context, email string) (postgres.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (postgres.User, error)
}

// ResolveIdentity builds the per-request identity context. Resolution order:
// provider session (Bearer token, when the verifier is configured) first,
// session cookie second. Every failure path degrades to an anonymous
// request; this middleware never rejects.
func ResolveIdentity(verifier *Verifier, sessions SessionStore, users UserLookup, cookieName string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithResponder(r.Context(), &Responder{W: w, R: r})

			if id := resolve(ctx, r, verifier, sessions, users, cookieName, logger); id != nil {
				ctx = WithIdentity(ctx, id)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolve(ctx context.Context, r *http.Request, verifier *Verifier, sessions SessionStore, users UserLookup, cookieName string, logger *slog.Logger) *Identity {
	if verifier != nil {
		if raw, ok := BearerToken(r); ok {
			email, err := verifier.VerifyToken(ctx, raw)
			if err != nil {
				logger.Debug("provider session rejected", slog.String("error", err.Error()))
				return nil
			}
			user, err := users.GetUserByEmail(ctx, email)
			if err != nil {
				// Verified provider session without a local user row:
				// treated as anonymous until the auth hook provisions one.
				logger.Debug("no user for provider session", slog.String("email", email))
				return nil
			}
			return &Identity{UserID: user.ID, Email: user.Email, AccessToken: raw}
		}
	}

	if sessions != nil {
		if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
			userID, err := sessions.Get(ctx, cookie.Value)
			if err != nil {
				return nil
			}
			user, err := users.GetUserByID(ctx, userID)
			if err != nil {
				return nil
			}
			return &Identity{UserID: user.ID, Email: user.Email}
		}
	}

	return nil
}
