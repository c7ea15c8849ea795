package postgres

import (
	"context"

	"github.com/google/uuid"
)

const userColumns = `id, name, surname, email, username, email_verified, created_at, modified_at`

func scanUser(row interface{ Scan(dest ...any) error }) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Surname, &u.Email, &u.Username,
		&u.EmailVerified, &u.CreatedAt, &u.ModifiedAt)
	return u, err
}

type CreateUserParams struct {
	ID       uuid.UUID
	Name     string
	Surname  string
	Email    string
	Username string
}

func (q *Queries) CreateUser(ctx context.Context, p CreateUserParams) (User, error) {
	row := q.db.QueryRow(ctx,
		`INSERT INTO users (id, name, surname, email, username)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+userColumns,
		p.ID, p.Name, p.Surname, p.Email, p.Username)
	return scanUser(row)
}

func (q *Queries) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	row := q.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n)
	return n, err
}

// ListUsersAfter returns up to limit users ordered by id, starting strictly
// after the given cursor id when present.
func (q *Queries) ListUsersAfter(ctx context.Context, after *uuid.UUID, limit int32) ([]User, error) {
	rows, err := q.db.Query(ctx,
		`SELECT `+userColumns+`
		 FROM users
		 WHERE $1::uuid IS NULL OR id > $1
		 ORDER BY id
		 LIMIT $2`,
		after, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, u)
	}
	return items, rows.Err()
}

type CreateProfileParams struct {
	ID      uuid.UUID
	UserID  uuid.UUID
	Bio     *string
	Picture *string
}

func (q *Queries) CreateProfile(ctx context.Context, p CreateProfileParams) (Profile, error) {
	row := q.db.QueryRow(ctx,
		`INSERT INTO profiles (id, user_id, bio, picture)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, user_id, bio, picture, address, postal_code, country, city, province, mobile, created_at, modified_at`,
		p.ID, p.UserID, p.Bio, p.Picture)
	return scanProfile(row)
}

func scanProfile(row interface{ Scan(dest ...any) error }) (Profile, error) {
	var pr Profile
	err := row.Scan(&pr.ID, &pr.UserID, &pr.Bio, &pr.Picture, &pr.Address,
		&pr.PostalCode, &pr.Country, &pr.City, &pr.Province, &pr.Mobile,
		&pr.CreatedAt, &pr.ModifiedAt)
	return pr, err
}

func (q *Queries) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (Profile, error) {
	row := q.db.QueryRow(ctx,
		`SELECT id, user_id, bio, picture, address, postal_code, country, city, province, mobile, created_at, modified_at
		 FROM profiles WHERE user_id = $1`, userID)
	return scanProfile(row)
}

type CreateAccountParams struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Username     string
	PasswordHash string
}

func (q *Queries) CreateAccount(ctx context.Context, p CreateAccountParams) (Account, error) {
	row := q.db.QueryRow(ctx,
		`INSERT INTO accounts (id, user_id, username, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, user_id, username, password_hash, status, failed_attempt, created_at, modified_at`,
		p.ID, p.UserID, p.Username, p.PasswordHash)
	var a Account
	err := row.Scan(&a.ID, &a.UserID, &a.Username, &a.PasswordHash,
		&a.Status, &a.FailedAttempt, &a.CreatedAt, &a.ModifiedAt)
	return a, err
}

// GetCredentials looks up a user joined with its account by email or account
// username. Empty selector strings never match.
func (q *Queries) GetCredentials(ctx context.Context, email, username string) (Credentials, error) {
	row := q.db.QueryRow(ctx,
		`SELECT u.id, u.name, u.surname, u.email, u.username, u.email_verified, u.created_at, u.modified_at,
		        a.id, a.user_id, a.username, a.password_hash, a.status, a.failed_attempt, a.created_at, a.modified_at
		 FROM users u
		 JOIN accounts a ON a.user_id = u.id
		 WHERE (u.email = $1 AND $1 <> '') OR (a.username = $2 AND $2 <> '')`,
		email, username)

	var c Credentials
	err := row.Scan(
		&c.User.ID, &c.User.Name, &c.User.Surname, &c.User.Email, &c.User.Username,
		&c.User.EmailVerified, &c.User.CreatedAt, &c.User.ModifiedAt,
		&c.Account.ID, &c.Account.UserID, &c.Account.Username, &c.Account.PasswordHash,
		&c.Account.Status, &c.Account.FailedAttempt, &c.Account.CreatedAt, &c.Account.ModifiedAt)
	return c, err
}

// RecordFailedSignIn stores the new failure counter and status after a wrong
// password. The counter never decreases.
func (q *Queries) RecordFailedSignIn(ctx context.Context, accountID uuid.UUID, failedAttempt int32, status string) error {
	_, err := q.db.Exec(ctx,
		`UPDATE accounts
		 SET failed_attempt = GREATEST(failed_attempt, $2), status = $3, modified_at = now()
		 WHERE id = $1`,
		accountID, failedAttempt, status)
	return err
}

func (q *Queries) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var taken bool
	err := q.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE username = $1)`, username).Scan(&taken)
	return taken, err
}
