package store

import (
	"context"
	"errors"

	"github.com/herfa/gate/internal/gate/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement this.
// It exposes sub-repositories to keep concerns tidy and testable.
type Store interface {
	Users() Users
	Genders() Genders
	Credentials() Credentials

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing on nil and
	// rolling back on error. Preferred over Tx for multi-step operations.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Users is the user directory: the system of record the authentication flow
// validates identifiers against.
type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.UserRecord, error)

	// GetUserByEmail is used during sign-in; the email is the identifier.
	GetUserByEmail(ctx context.Context, email string) (domain.UserRecord, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	CreateUser(ctx context.Context, u domain.UserRecord) error

	// ReplaceProfile overwrites the display fields wholesale and bumps
	// updated_at. Credential and second-factor material are untouched.
	ReplaceProfile(ctx context.Context, u domain.UserRecord) error

	// SetActive flips the account's active flag.
	SetActive(ctx context.Context, userID string, active bool) error

	// EnrollSecondFactor stores the TOTP secret and marks enrollment time.
	EnrollSecondFactor(ctx context.Context, userID string, secret string) error

	// CountByRole returns the number of users per role.
	CountByRole(ctx context.Context) (map[domain.Role]int, error)

	// CountActive returns the number of active users.
	CountActive(ctx context.Context) (int, error)

	// IsEmpty reports whether the directory holds no users.
	IsEmpty(ctx context.Context) (bool, error)
}

// Genders serves registration reference data.
type Genders interface {
	ListGenders(ctx context.Context) ([]domain.Gender, error)

	// UpsertGender inserts or replaces a reference row (seeding).
	UpsertGender(ctx context.Context, g domain.Gender) error
}

// Credentials is the durable area of the credential store: at most one
// encoded session record per well-known key.
type Credentials interface {
	// PutCredential inserts or replaces the row for its key.
	PutCredential(ctx context.Context, row domain.CredentialRow) error

	// GetCredential returns the row for key, or ErrNotFound.
	GetCredential(ctx context.Context, key string) (domain.CredentialRow, error)

	// DeleteCredential removes the row for key. Removing an absent key is
	// not an error.
	DeleteCredential(ctx context.Context, key string) error

	// DeleteExpiredCredentials purges rows past their expiry (housekeeping).
	DeleteExpiredCredentials(ctx context.Context) error
}
