package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

// ErrSessionNotFound is returned when a token is unknown or expired.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore maps opaque session tokens to user ids. The token is the
// only value that ever reaches the client; the user id stays server-side.
type SessionStore interface {
	Create(ctx context.Context, userID uuid.UUID) (string, error)
	Get(ctx context.Context, token string) (uuid.UUID, error)
	Delete(ctx context.Context, token string) error
}

const sessionKeyPrefix = "session:"

// ValkeySessions stores sessions in Valkey with a TTL.
type ValkeySessions struct {
	client valkey.Client
	ttl    time.Duration
}

func NewValkeySessions(client valkey.Client, ttl time.Duration) *ValkeySessions {
	return &ValkeySessions{client: client, ttl: ttl}
}

func (s *ValkeySessions) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	token := hex.EncodeToString(buf)

	cmd := s.client.B().Set().
		Key(sessionKeyPrefix + token).
		Value(userID.String()).
		Ex(s.ttl).
		Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

func (s *ValkeySessions) Get(ctx context.Context, token string) (uuid.UUID, error) {
	resp := s.client.Do(ctx, s.client.B().Get().Key(sessionKeyPrefix+token).Build())
	val, err := resp.ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return uuid.Nil, ErrSessionNotFound
		}
		return uuid.Nil, fmt.Errorf("load session: %w", err)
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, fmt.Errorf("corrupt session value: %w", err)
	}
	return userID, nil
}

func (s *ValkeySessions) Delete(ctx context.Context, token string) error {
	return s.client.Do(ctx, s.client.B().Del().Key(sessionKeyPrefix+token).Build()).Error()
}

// SetSessionCookie issues the session cookie. Max-Age tracks the store TTL
// so the cookie and the server-side session expire together. secure should
// be false only when serving plain HTTP in development.
func SetSessionCookie(w http.ResponseWriter, name, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie immediately.
func ClearSessionCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
