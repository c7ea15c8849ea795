package blog

import (
	"context"

	"github.com/plumeworks/plume/internal/store"
	"github.com/plumeworks/plume/internal/store/postgres"
)

// SQLStore adapts the shared store to this service's persistence port.
type SQLStore struct {
	*store.Store
}

func NewSQLStore(s *store.Store) SQLStore {
	return SQLStore{Store: s}
}

func (s SQLStore) InTx(ctx context.Context, fn func(Queries) error) error {
	return s.WithTx(ctx, func(q *postgres.Queries) error {
		return fn(q)
	})
}
