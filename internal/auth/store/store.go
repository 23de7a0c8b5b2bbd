package store

import (
	"context"
	"errors"
	"time"

	"github.com/amitmore-007/Recipe-Generator/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this and expose their tables as sub-repositories.
type Store interface {
	Users() Users
	LoginAttempts() LoginAttempts

	// ApplyMigrations brings the schema up to date. Safe to call on every start.
	ApplyMigrations(ctx context.Context) error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error

	Close() error
}

type Users interface {
	// GetUserByEmail looks up by normalised email. Absent users yield ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// CreateUser assigns an id and creation time, inserts, and returns the
	// stored row. A taken email yields ErrAlreadyExists; the check and the
	// insert are one statement, so concurrent callers cannot both win.
	CreateUser(ctx context.Context, u domain.NewUser) (domain.User, error)

	Count(ctx context.Context) (int, error)
}

type LoginAttempts interface {
	RecordLoginAttempt(ctx context.Context, a domain.LoginAttempt) error

	// DeleteLoginAttemptsBefore prunes audit rows older than cutoff and
	// reports how many were removed.
	DeleteLoginAttemptsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
