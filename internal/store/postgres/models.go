package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so every
// query runs unchanged inside or outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries bundles all hand-written queries over a DBTX.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a Queries bound to the given transaction.
func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}

// Account status values. A locked account rejects every sign-in attempt.
const (
	AccountStatusActive = "A"
	AccountStatusLocked = "L"
)

// Post status values.
const (
	PostStatusDraft     = "DRAFT"
	PostStatusPublished = "PUBLISHED"
	PostStatusBlocked   = "BLOCKED"
	PostStatusDeleted   = "DELETED"
)

type User struct {
	ID            uuid.UUID
	Name          string
	Surname       string
	Email         string
	Username      string
	EmailVerified *time.Time
	CreatedAt     time.Time
	ModifiedAt    time.Time
}

type Profile struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Bio        *string
	Picture    *string
	Address    *string
	PostalCode *string
	Country    *string
	City       *string
	Province   *string
	Mobile     *string
	CreatedAt  time.Time
	ModifiedAt time.Time
}

type Account struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Username      string
	PasswordHash  string
	Status        string
	FailedAttempt int32
	CreatedAt     time.Time
	ModifiedAt    time.Time
}

// Credentials is the join of a user with its account, used by sign-in.
type Credentials struct {
	User    User
	Account Account
}

type Post struct {
	ID          uuid.UUID
	Title       string
	Description *string
	Content     string
	Slug        string
	Status      string
	AuthorID    uuid.UUID
	CreatedAt   time.Time
	ModifiedAt  time.Time
}

type Category struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	Description *string
	Color       *string
	IsPrivate   bool
	CreatedAt   time.Time
	ModifiedAt  time.Time
}

type Tag struct {
	ID         uuid.UUID
	Name       string
	Slug       string
	CreatedAt  time.Time
	ModifiedAt time.Time
}

type Group struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	Description *string
	IsPrivate   bool
	CreatedAt   time.Time
	ModifiedAt  time.Time
}

type Comment struct {
	ID         uuid.UUID
	PostID     uuid.UUID
	Content    string
	IsBlocked  bool
	CreatedAt  time.Time
	ModifiedAt time.Time
}
