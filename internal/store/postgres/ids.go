package postgres

import "github.com/google/uuid"

// NewID returns a UUIDv7. Time-ordered ids are what make the id-keyed
// cursor pagination return rows in creation order.
func NewID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the randomness source does; fall back to v4.
		return uuid.New()
	}
	return id
}
