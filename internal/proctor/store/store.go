package store

import (
	"context"
	"errors"
	"time"

	"github.com/wpdevquiz/proctor/internal/proctor/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for
// now) implement this. Sub-repositories keep the two tables' concerns tidy
// and let tests swap a transaction in for the root store.
type Store interface {
	Users() Users
	QuizResults() QuizResults

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns
	// nil and rolling back otherwise.
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

type Users interface {
	// GetByID returns a user by id.
	GetByID(ctx context.Context, id string) (domain.User, error)

	// GetByEmail is used during login; email is stored lowercased.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// Create inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the email is taken.
	Create(ctx context.Context, u domain.User) error

	// List returns all users, newest first.
	List(ctx context.Context) ([]domain.User, error)

	// SetAdmin promotes a user to admin (login with the admin key).
	SetAdmin(ctx context.Context, userID string) error

	// SetWarningCount overwrites the warning counter.
	SetWarningCount(ctx context.Context, userID string, count int) error

	// SetRestartCount overwrites the restart counter.
	SetRestartCount(ctx context.Context, userID string, count int) error

	// Block flips is_blocked and records the reason and timestamp.
	// Counters are left untouched.
	Block(ctx context.Context, userID, reason string, at time.Time) error

	// Unblock clears the block state and resets BOTH counters to zero.
	Unblock(ctx context.Context, userID string) error

	// Delete removes the user; quiz results cascade per schema.
	Delete(ctx context.Context, userID string) error
}

type QuizResults interface {
	// Create inserts one completed attempt.
	Create(ctx context.Context, r domain.QuizResult) error

	// ListByUser returns the user's attempts, newest first by completion.
	ListByUser(ctx context.Context, userID string) ([]domain.QuizResult, error)

	// ListAll returns every attempt, newest first by completion.
	ListAll(ctx context.Context) ([]domain.QuizResult, error)

	// UpdateStatusByUser overwrites the triage status on every attempt
	// owned by the user.
	UpdateStatusByUser(ctx context.Context, userID, status string) error

	// DeleteByUser removes all attempts for a user.
	DeleteByUser(ctx context.Context, userID string) error
}
