package auth

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/plumeworks/plume/internal/store/postgres"
)

func TestIdentityContext(t *testing.T) {
	ctx := context.Background()

	if _, ok := IdentityFrom(ctx); ok {
		t.Fatal("expected no identity in empty context")
	}

	id := &Identity{
		UserID: uuid.MustParse("018f3b2a-0000-7000-8000-000000000001"),
		Email:  "author@example.com",
	}
	ctx = WithIdentity(ctx, id)

	got, ok := IdentityFrom(ctx)
	if !ok {
		t.Fatal("expected identity in context")
	}
	if got.UserID != id.UserID {
		t.Fatalf("got user id %v, want %v", got.UserID, id.UserID)
	}
	if got.Email != "author@example.com" {
		t.Fatalf("got email %q, want %q", got.Email, "author@example.com")
	}
}

type fakeSessions struct {
	tokens map[string]uuid.UUID
}

func (f *fakeSessions) Create(_ context.Context, userID uuid.UUID) (string, error) {
	tok := "tok-" + userID.String()
	f.tokens[tok] = userID
	return tok, nil
}

func (f *fakeSessions) Get(_ context.Context, token string) (uuid.UUID, error) {
	id, ok := f.tokens[token]
	if !ok {
		return uuid.Nil, ErrSessionNotFound
	}
	return id, nil
}

func (f *fakeSessions) Delete(_ context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

type fakeUsers struct {
	byID map[uuid.UUID]postgres.User
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (postgres.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return postgres.User{}, context.Canceled
}

func (f *fakeUsers) GetUserByID(_ context.Context, id uuid.UUID) (postgres.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return postgres.User{}, context.Canceled
	}
	return u, nil
}

func TestResolveIdentity_SessionCookie(t *testing.T) {
	userID := uuid.MustParse("018f3b2a-0000-7000-8000-000000000002")
	sessions := &fakeSessions{tokens: map[string]uuid.UUID{"good-token": userID}}
	users := &fakeUsers{byID: map[uuid.UUID]postgres.User{
		userID: {ID: userID, Email: "reader@example.com"},
	}}

	var got *Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = IdentityFrom(r.Context())
	})

	mw := ResolveIdentity(nil, sessions, users, "plume_session", slog.Default())
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.AddCookie(&http.Cookie{Name: "plume_session", Value: "good-token"})
	mw(next).ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("expected authenticated identity")
	}
	if got.UserID != userID {
		t.Fatalf("got user id %v, want %v", got.UserID, userID)
	}
	if got.Email != "reader@example.com" {
		t.Fatalf("got email %q", got.Email)
	}
	if got.AccessToken != "" {
		t.Fatal("cookie-resolved identity must not carry an access token")
	}
}

func TestResolveIdentity_UnknownTokenIsAnonymous(t *testing.T) {
	sessions := &fakeSessions{tokens: map[string]uuid.UUID{}}
	users := &fakeUsers{byID: map[uuid.UUID]postgres.User{}}

	anonymous := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := IdentityFrom(r.Context())
		anonymous = !ok
	})

	mw := ResolveIdentity(nil, sessions, users, "plume_session", slog.Default())
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.AddCookie(&http.Cookie{Name: "plume_session", Value: "stale-token"})
	w := httptest.NewRecorder()
	mw(next).ServeHTTP(w, req)

	if !anonymous {
		t.Fatal("expected anonymous identity for unknown session token")
	}
	if w.Code != http.StatusOK {
		t.Fatalf("middleware must never reject, got status %d", w.Code)
	}
}

func TestResolveIdentity_NoCredentialsIsAnonymous(t *testing.T) {
	anonymous := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := IdentityFrom(r.Context())
		anonymous = !ok
	})

	mw := ResolveIdentity(nil, &fakeSessions{tokens: map[string]uuid.UUID{}}, &fakeUsers{}, "plume_session", slog.Default())
	mw(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/graphql", nil))

	if !anonymous {
		t.Fatal("expected anonymous identity without credentials")
	}
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := BearerToken(req); ok {
		t.Fatal("expected no token without header")
	}

	req.Header.Set("Authorization", "Bearer abc123")
	tok, ok := BearerToken(req)
	if !ok || tok != "abc123" {
		t.Fatalf("got (%q, %v), want (abc123, true)", tok, ok)
	}

	req.Header.Set("Authorization", "Basic abc123")
	if _, ok := BearerToken(req); ok {
		t.Fatal("expected no token for non-bearer scheme")
	}
}

func TestSessionCookieLifetime(t *testing.T) {
	w := httptest.NewRecorder()
	SetSessionCookie(w, "plume_session", "tok", 144*time.Hour, true)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Value != "tok" || !c.HttpOnly || !c.Secure {
		t.Fatalf("unexpected cookie %+v", c)
	}
	if c.MaxAge != 144*60*60 {
		t.Fatalf("got max-age %d, want %d", c.MaxAge, 144*60*60)
	}
}

func TestSessionCookieSecureIsOptOut(t *testing.T) {
	w := httptest.NewRecorder()
	SetSessionCookie(w, "plume_session", "tok", time.Hour, false)

	c := w.Result().Cookies()[0]
	if c.Secure {
		t.Fatal("expected Secure off when disabled for plain-HTTP development")
	}
}
