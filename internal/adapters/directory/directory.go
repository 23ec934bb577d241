// Package directory provides the in-memory user directory collaborator.
// The stores resolve ids and roles against it but never own its records;
// in a real deployment it would front an identity provider.
package directory

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/edulab/projhub/internal/domain"
	"github.com/edulab/projhub/internal/domain/user"
	"github.com/edulab/projhub/internal/ports"
)

// Compile-time checks.
var (
	_ ports.UserDirectory = (*Directory)(nil)
	_ ports.HealthChecker = (*Directory)(nil)
)

// Directory is a thread-safe in-memory user directory, seeded at startup.
type Directory struct {
	mu     sync.RWMutex
	users  []user.User
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Directory.
type Option func(*Directory)

// WithClock overrides the creation-time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(d *Directory) { d.now = now }
}

// New creates a directory seeded with the given users.
func New(seed []user.User, logger *slog.Logger, opts ...Option) *Directory {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	d := &Directory{
		users:  append([]user.User(nil), seed...),
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// FindByID returns the user with the given id.
func (d *Directory) FindByID(ctx context.Context, id string) (*user.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for i := range d.users {
		if d.users[i].ID == id {
			u := d.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

// FindByEmail returns the user registered under the given email. Lookup is
// case-insensitive, matching how the login form treats addresses.
func (d *Directory) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for i := range d.users {
		if strings.EqualFold(d.users[i].Email, email) {
			u := d.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ListByRole returns all users with the given role, in registration order.
func (d *Directory) ListByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]user.User, 0)
	for i := range d.users {
		if d.users[i].Role == role {
			out = append(out, d.users[i])
		}
	}
	return out, nil
}

// Register appends a new user, assigning id and creation time.
func (d *Directory) Register(ctx context.Context, u user.User) (*user.User, error) {
	u.ID = uuid.NewString()
	u.CreatedAt = d.now().UTC()

	if err := u.Validate(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.users {
		if strings.EqualFold(d.users[i].Email, u.Email) {
			return nil, domain.ErrConflict
		}
	}

	d.users = append(d.users, u)
	d.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", u.ID),
		slog.String("role", u.Role.String()),
	)
	return &u, nil
}

// Name implements ports.HealthChecker.
func (d *Directory) Name() string {
	return "user-directory"
}

// HealthCheck reports healthy as long as the seeded collection is reachable.
func (d *Directory) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return nil
}
