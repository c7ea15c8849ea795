package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/plumeworks/plume/internal/account"
	apihandler "github.com/plumeworks/plume/internal/api/handler"
	gql "github.com/plumeworks/plume/internal/api/graphql"
	apimw "github.com/plumeworks/plume/internal/api/middleware"
	"github.com/plumeworks/plume/internal/auth"
	"github.com/plumeworks/plume/internal/blog"
	"github.com/plumeworks/plume/internal/config"
	"github.com/plumeworks/plume/internal/store"
	minioclient "github.com/plumeworks/plume/internal/store/minio"
)

// RouterDeps holds the optional dependencies: each may be nil and the
// routes (or behaviors) needing it are then left out.
type RouterDeps struct {
	MinIO    *minioclient.Client
	Sessions auth.SessionStore
	Verifier *auth.Verifier
}

func NewRouter(logger *slog.Logger, s *store.Store, cfg *config.Config, deps *RouterDeps) (*chi.Mux, error) {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(apimw.Logger(logger))
	r.Use(apimw.CORS)
	r.Use(chimw.Recoverer)

	// Health checks
	health := apihandler.NewHealthHandler(s.Pool())
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	if deps == nil {
		deps = &RouterDeps{}
	}

	schema, err := gql.NewSchema(gql.Config{
		Store:         s,
		Blog:          blog.NewService(blog.NewSQLStore(s), logger),
		Accounts:      account.NewService(account.NewSQLStore(s), logger),
		Sessions:      deps.Sessions,
		SessionCookie: cfg.Auth.SessionCookie,
		SessionTTL:    cfg.Auth.SessionTTL,
		CookieSecure:  cfg.Auth.CookieSecure,
		Logger:        logger,
	})
	if err != nil {
		return nil, err
	}

	// GraphQL, behind identity resolution. Anonymous requests pass
	// through; the resolvers decide what needs authentication.
	r.Group(func(r chi.Router) {
		r.Use(auth.ResolveIdentity(deps.Verifier, deps.Sessions, s, cfg.Auth.SessionCookie, logger))
		r.Post("/graphql", schema.Handler())
	})

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Upload (requires MinIO)
		if deps.MinIO != nil {
			upload := apihandler.NewUploadHandler(logger, deps.MinIO)
			r.Post("/upload", upload.Upload)
		}

		webhooks := apihandler.NewWebhookHandler(logger, s, cfg.Auth.HookSecret)
		r.Post("/webhooks/auth", webhooks.AuthHook)
	})

	return r, nil
}
