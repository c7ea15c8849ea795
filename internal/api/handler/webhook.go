package handler

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/plumeworks/plume/internal/store"
	"github.com/plumeworks/plume/internal/store/postgres"
	"github.com/plumeworks/plume/pkg/apierr"
)

type WebhookHandler struct {
	logger *slog.Logger
	store  *store.Store
	secret string
}

func NewWebhookHandler(logger *slog.Logger, s *store.Store, secret string) *WebhookHandler {
	return &WebhookHandler{logger: logger, store: s, secret: secret}
}

type authHookRequest struct {
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	Surname  string  `json:"surname"`
	Username string  `json:"username"`
	Picture  *string `json:"picture"`
	Secret   string  `json:"secret"`
}

// AuthHook handles POST /api/v1/webhooks/auth: the identity provider calls
// it after a registration so a local user row exists before the first
// Bearer-token request arrives. Replays are answered 200 without touching
// the store.
func (h *WebhookHandler) AuthHook(w http.ResponseWriter, r *http.Request) {
	var req authHookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, h.logger, apierr.InvalidRequestBody())
		return
	}

	if req.Secret == "" {
		writeAPIError(w, h.logger, apierr.MissingAuthToken())
		return
	}
	if subtle.ConstantTimeCompare([]byte(req.Secret), []byte(h.secret)) != 1 {
		writeAPIError(w, h.logger, apierr.InvalidAuthToken())
		return
	}

	if strings.TrimSpace(req.Email) == "" {
		writeAPIError(w, h.logger, apierr.EmailRequired())
		return
	}

	if existing, err := h.store.GetUserByEmail(r.Context(), req.Email); err == nil {
		writeJSON(w, http.StatusOK, map[string]any{"status": "exists", "id": existing.ID})
		return
	} else if !apierr.IsNotFound(err) {
		writeAPIError(w, h.logger, apierr.InternalError(err))
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = req.Email
	}
	surname := strings.TrimSpace(req.Surname)
	if surname == "" {
		surname = name
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		username = req.Email
	}

	var user postgres.User
	err := h.store.WithTx(r.Context(), func(q *postgres.Queries) error {
		u, err := q.CreateUser(r.Context(), postgres.CreateUserParams{
			ID:       postgres.NewID(),
			Name:     name,
			Surname:  surname,
			Email:    req.Email,
			Username: username,
		})
		if err != nil {
			return err
		}
		_, err = q.CreateProfile(r.Context(), postgres.CreateProfileParams{
			ID:      postgres.NewID(),
			UserID:  u.ID,
			Picture: req.Picture,
		})
		if err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		// A concurrent hook delivery may have created the row first.
		if apierr.IsUniqueViolation(err, "users_email_key") {
			writeJSON(w, http.StatusOK, map[string]any{"status": "exists"})
			return
		}
		writeAPIError(w, h.logger, apierr.InternalError(err))
		return
	}

	h.logger.Info("user provisioned via auth hook", slog.String("user_id", user.ID.String()))
	writeJSON(w, http.StatusCreated, map[string]any{"status": "created", "id": user.ID})
}
