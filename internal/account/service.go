package account

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/plumeworks/plume/internal/store/postgres"
	"github.com/plumeworks/plume/pkg/apierr"
)

// LockThreshold is the failed-attempt count at which an account locks.
// Once locked, every further sign-in fails regardless of the password.
const LockThreshold = 9

// passwordHashCost is the bcrypt work factor for stored credentials.
const passwordHashCost = 14

// defaultBio seeds the profile created alongside every new account.
const defaultBio = "Bio"

// Queries is the slice of the store the account service needs.
type Queries interface {
	CreateUser(ctx context.Context, p postgres.CreateUserParams) (postgres.User, error)
	CreateProfile(ctx context.Context, p postgres.CreateProfileParams) (postgres.Profile, error)
	CreateAccount(ctx context.Context, p postgres.CreateAccountParams) (postgres.Account, error)
	GetCredentials(ctx context.Context, email, username string) (postgres.Credentials, error)
	RecordFailedSignIn(ctx context.Context, accountID uuid.UUID, failedAttempt int32, status string) error
	UsernameTaken(ctx context.Context, username string) (bool, error)
}

// Store is the persistence port: the queries plus a transaction runner.
type Store interface {
	Queries
	InTx(ctx context.Context, fn func(Queries) error) error
}

// Service implements sign-up and sign-in over local credentials.
type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

type SignUpInput struct {
	Email    string
	Name     string
	Password string
	Username string
}

// SignUp creates a User together with its Account (active, zero failures)
// and a default Profile in one transaction. An empty username gets a
// generated placeholder.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (postgres.User, error) {
	if strings.TrimSpace(in.Email) == "" {
		return postgres.User{}, apierr.EmailRequired()
	}
	if strings.TrimSpace(in.Name) == "" {
		return postgres.User{}, apierr.NameRequired()
	}
	if in.Password == "" {
		return postgres.User{}, apierr.PasswordRequired()
	}

	username := strings.TrimSpace(in.Username)
	if username == "" {
		var err error
		if username, err = s.pickUsername(ctx); err != nil {
			return postgres.User{}, apierr.SignUpFailed(err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), passwordHashCost)
	if err != nil {
		return postgres.User{}, apierr.SignUpFailed(err)
	}

	var user postgres.User
	err = s.store.InTx(ctx, func(q Queries) error {
		u, err := q.CreateUser(ctx, postgres.CreateUserParams{
			ID:       postgres.NewID(),
			Name:     in.Name,
			Surname:  in.Name,
			Email:    in.Email,
			Username: username,
		})
		if err != nil {
			return err
		}
		if _, err := q.CreateAccount(ctx, postgres.CreateAccountParams{
			ID:           postgres.NewID(),
			UserID:       u.ID,
			Username:     username,
			PasswordHash: string(hash),
		}); err != nil {
			return err
		}
		bio := defaultBio
		if _, err := q.CreateProfile(ctx, postgres.CreateProfileParams{
			ID:     postgres.NewID(),
			UserID: u.ID,
			Bio:    &bio,
		}); err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		if apierr.IsUniqueViolation(err, "users_email_key") {
			return postgres.User{}, apierr.EmailTaken()
		}
		return postgres.User{}, apierr.SignUpFailed(err)
	}
	return user, nil
}

// pickUsername generates placeholders until one is free. The word list is
// small, so a handful of attempts is plenty in practice.
func (s *Service) pickUsername(ctx context.Context) (string, error) {
	var candidate string
	for i := 0; i < 10; i++ {
		candidate = placeholderUsername()
		taken, err := s.store.UsernameTaken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	// Collisions ten times in a row: disambiguate with an id fragment.
	return candidate + "-" + postgres.NewID().String()[:8], nil
}

type CreateUserInput struct {
	Name     string
	Surname  string
	Email    string
	Username string
}

// CreateUser creates a bare user row without credentials. Provider-backed
// identities arrive this way; local credentials go through SignUp.
func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (postgres.User, error) {
	if strings.TrimSpace(in.Name) == "" {
		return postgres.User{}, apierr.NameRequired()
	}
	if strings.TrimSpace(in.Email) == "" {
		return postgres.User{}, apierr.EmailRequired()
	}
	surname := strings.TrimSpace(in.Surname)
	if surname == "" {
		surname = in.Name
	}
	username := strings.TrimSpace(in.Username)
	if username == "" {
		var err error
		if username, err = s.pickUsername(ctx); err != nil {
			return postgres.User{}, apierr.InternalError(err)
		}
	}

	user, err := s.store.CreateUser(ctx, postgres.CreateUserParams{
		ID:       postgres.NewID(),
		Name:     in.Name,
		Surname:  surname,
		Email:    in.Email,
		Username: username,
	})
	if err != nil {
		if apierr.IsUniqueViolation(err, "users_email_key") {
			return postgres.User{}, apierr.EmailTaken()
		}
		return postgres.User{}, apierr.InternalError(err)
	}
	return user, nil
}

type SignInInput struct {
	Email    string
	Username string
	Password string
}

// SignIn verifies credentials and returns the user. Unknown users and
// wrong passwords collapse into one invalid-credentials error; a locked
// account answers Blocked no matter the password. Each wrong password
// increments the failure counter and locks the account at the threshold.
// The counter is left untouched on success.
func (s *Service) SignIn(ctx context.Context, in SignInInput) (postgres.User, error) {
	if in.Password == "" {
		return postgres.User{}, apierr.PasswordRequired()
	}
	if strings.TrimSpace(in.Email) == "" && strings.TrimSpace(in.Username) == "" {
		return postgres.User{}, apierr.InvalidCredentials()
	}

	creds, err := s.store.GetCredentials(ctx, in.Email, in.Username)
	if err != nil {
		if apierr.IsNotFound(err) {
			return postgres.User{}, apierr.InvalidCredentials()
		}
		return postgres.User{}, apierr.InternalError(err)
	}

	if creds.Account.Status != postgres.AccountStatusActive {
		return postgres.User{}, apierr.AccountLocked()
	}

	if bcrypt.CompareHashAndPassword([]byte(creds.Account.PasswordHash), []byte(in.Password)) != nil {
		attempts := creds.Account.FailedAttempt + 1
		status := creds.Account.Status
		if attempts >= LockThreshold {
			status = postgres.AccountStatusLocked
		}
		if err := s.store.RecordFailedSignIn(ctx, creds.Account.ID, attempts, status); err != nil {
			s.logger.Error("record failed sign-in",
				slog.String("account_id", creds.Account.ID.String()),
				slog.String("error", err.Error()))
		}
		return postgres.User{}, apierr.InvalidCredentials()
	}

	return creds.User, nil
}
