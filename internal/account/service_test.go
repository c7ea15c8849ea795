package account

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plumeworks/plume/internal/store/postgres"
	"github.com/plumeworks/plume/pkg/apierr"
)

type fakeStore struct {
	users    map[uuid.UUID]postgres.User
	accounts map[uuid.UUID]postgres.Account // by account id
	profiles map[uuid.UUID]postgres.Profile // by user id
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    map[uuid.UUID]postgres.User{},
		accounts: map[uuid.UUID]postgres.Account{},
		profiles: map[uuid.UUID]postgres.Profile{},
	}
}

func (f *fakeStore) InTx(_ context.Context, fn func(Queries) error) error {
	return fn(f)
}

func (f *fakeStore) CreateUser(_ context.Context, p postgres.CreateUserParams) (postgres.User, error) {
	for _, u := range f.users {
		if u.Email == p.Email {
			return postgres.User{}, &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
		}
	}
	u := postgres.User{ID: p.ID, Name: p.Name, Surname: p.Surname, Email: p.Email, Username: p.Username}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeStore) CreateProfile(_ context.Context, p postgres.CreateProfileParams) (postgres.Profile, error) {
	pr := postgres.Profile{ID: p.ID, UserID: p.UserID, Bio: p.Bio, Picture: p.Picture}
	f.profiles[p.UserID] = pr
	return pr, nil
}

func (f *fakeStore) CreateAccount(_ context.Context, p postgres.CreateAccountParams) (postgres.Account, error) {
	a := postgres.Account{
		ID: p.ID, UserID: p.UserID, Username: p.Username,
		PasswordHash: p.PasswordHash, Status: postgres.AccountStatusActive,
	}
	f.accounts[a.ID] = a
	return a, nil
}

func (f *fakeStore) GetCredentials(_ context.Context, email, username string) (postgres.Credentials, error) {
	for _, a := range f.accounts {
		u := f.users[a.UserID]
		if (email != "" && u.Email == email) || (username != "" && a.Username == username) {
			return postgres.Credentials{User: u, Account: a}, nil
		}
	}
	return postgres.Credentials{}, pgx.ErrNoRows
}

func (f *fakeStore) RecordFailedSignIn(_ context.Context, accountID uuid.UUID, failedAttempt int32, status string) error {
	a := f.accounts[accountID]
	if failedAttempt > a.FailedAttempt {
		a.FailedAttempt = failedAttempt
	}
	a.Status = status
	f.accounts[accountID] = a
	return nil
}

func (f *fakeStore) UsernameTaken(_ context.Context, username string) (bool, error) {
	for _, a := range f.accounts {
		if a.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func errCode(t *testing.T, err error) apierr.Code {
	t.Helper()
	apiErr, ok := err.(*apierr.Error)
	require.True(t, ok, "expected *apierr.Error, got %T: %v", err, err)
	return apiErr.Code()
}

func TestSignUp_CreatesAccountAndProfile(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, slog.Default())

	user, err := svc.SignUp(context.Background(), SignUpInput{
		Email:    "writer@example.com",
		Name:     "Writer",
		Password: "s3cret",
		Username: "writer",
	})
	require.NoError(t, err)

	require.Len(t, store.accounts, 1)
	var account postgres.Account
	for _, a := range store.accounts {
		account = a
	}
	assert.Equal(t, user.ID, account.UserID)
	assert.Equal(t, postgres.AccountStatusActive, account.Status)
	assert.EqualValues(t, 0, account.FailedAttempt)
	assert.NotEqual(t, "s3cret", account.PasswordHash, "password must never be stored verbatim")

	profile, ok := store.profiles[user.ID]
	require.True(t, ok, "sign-up must create a profile")
	require.NotNil(t, profile.Bio)
	assert.Equal(t, defaultBio, *profile.Bio)
}

func TestSignUp_EmptyUsernameGetsPlaceholder(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, slog.Default())

	user, err := svc.SignUp(context.Background(), SignUpInput{
		Email:    "anon@example.com",
		Name:     "Anon",
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.Regexp(t, `^[a-z]+\d+$`, user.Username)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, slog.Default())

	_, err := svc.SignUp(context.Background(), SignUpInput{Email: "dup@example.com", Name: "A", Password: "p", Username: "a"})
	require.NoError(t, err)

	_, err = svc.SignUp(context.Background(), SignUpInput{Email: "dup@example.com", Name: "B", Password: "p", Username: "b"})
	assert.Equal(t, apierr.CodeEmailTaken, errCode(t, err))
}

func TestSignIn_Success(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, slog.Default())

	created, err := svc.SignUp(context.Background(), SignUpInput{
		Email: "writer@example.com", Name: "Writer", Password: "s3cret", Username: "writer",
	})
	require.NoError(t, err)

	user, err := svc.SignIn(context.Background(), SignInInput{Email: "writer@example.com", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	byUsername, err := svc.SignIn(context.Background(), SignInInput{Username: "writer", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, byUsername.ID)

	for _, a := range store.accounts {
		assert.EqualValues(t, 0, a.FailedAttempt, "success must not touch the failure counter")
	}
}

func TestSignIn_WrongPasswordIncrementsCounter(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, slog.Default())

	_, err := svc.SignUp(context.Background(), SignUpInput{
		Email: "writer@example.com", Name: "Writer", Password: "s3cret", Username: "writer",
	})
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		_, err := svc.SignIn(context.Background(), SignInInput{Email: "writer@example.com", Password: "wrong"})
		assert.Equal(t, apierr.CodeInvalidCredentials, errCode(t, err))
		for _, a := range store.accounts {
			assert.EqualValues(t, i, a.FailedAttempt)
		}
	}
}

func TestSignIn_LocksAtThreshold(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, slog.Default())

	_, err := svc.SignUp(context.Background(), SignUpInput{
		Email: "writer@example.com", Name: "Writer", Password: "s3cret", Username: "writer",
	})
	require.NoError(t, err)

	for i := 0; i < LockThreshold; i++ {
		_, err := svc.SignIn(context.Background(), SignInInput{Email: "writer@example.com", Password: "wrong"})
		require.Error(t, err)
	}

	for _, a := range store.accounts {
		assert.Equal(t, postgres.AccountStatusLocked, a.Status)
	}

	// Locked accounts answer Blocked even with the correct password.
	_, err = svc.SignIn(context.Background(), SignInInput{Email: "writer@example.com", Password: "s3cret"})
	assert.Equal(t, apierr.CodeAccountLocked, errCode(t, err))
}

func TestSignIn_UnknownUser(t *testing.T) {
	svc := NewService(newFakeStore(), slog.Default())

	_, err := svc.SignIn(context.Background(), SignInInput{Email: "ghost@example.com", Password: "p"})
	assert.Equal(t, apierr.CodeInvalidCredentials, errCode(t, err))
}

func TestSignIn_RequiresSelector(t *testing.T) {
	svc := NewService(newFakeStore(), slog.Default())

	_, err := svc.SignIn(context.Background(), SignInInput{Password: "p"})
	assert.Equal(t, apierr.CodeInvalidCredentials, errCode(t, err))

	_, err = svc.SignIn(context.Background(), SignInInput{Email: "a@b.c"})
	assert.Equal(t, apierr.CodePasswordRequired, errCode(t, err))
}
