package ports

import (
	"context"

	"github.com/edulab/projhub/internal/domain/user"
)

// UserDirectory defines the port for the external user directory
// collaborator. The stores query it to resolve ids and roles but never own
// its records. Implemented by an outbound adapter; called by the application
// layer.
type UserDirectory interface {
	// FindByID returns the user with the given id.
	// Returns domain.ErrNotFound if no such user exists.
	FindByID(ctx context.Context, id string) (*user.User, error)

	// FindByEmail returns the user registered under the given email.
	// Returns domain.ErrNotFound if no such user exists.
	FindByEmail(ctx context.Context, email string) (*user.User, error)

	// ListByRole returns all users with the given role, in registration order.
	ListByRole(ctx context.Context, role user.Role) ([]user.User, error)

	// Register appends a new user, assigning id and creation time.
	// Returns domain.ErrConflict if the email is already taken and
	// domain.ErrValidation if the record is malformed.
	Register(ctx context.Context, u user.User) (*user.User, error)
}

// SessionStore defines the port for the single persisted record: the
// currently authenticated user, stored as JSON under a fixed key.
type SessionStore interface {
	// Save persists u as the current session, replacing any prior record.
	Save(ctx context.Context, u user.User) error

	// Load returns the persisted session user.
	// Returns domain.ErrNotFound when no session is stored.
	Load(ctx context.Context) (*user.User, error)

	// Clear removes the persisted session. Clearing an absent session is
	// not an error.
	Clear(ctx context.Context) error
}
