// Package session persists the current-user record as a single JSON file,
// mirroring how a browser client keeps the signed-in user in local storage.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/edulab/projhub/internal/domain"
	"github.com/edulab/projhub/internal/domain/user"
	"github.com/edulab/projhub/internal/ports"
)

// Compile-time checks.
var (
	_ ports.SessionStore  = (*FileStore)(nil)
	_ ports.HealthChecker = (*FileStore)(nil)
)

// record is the on-disk shape. Only one record ever exists.
type record struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	SavedAt   time.Time `json:"saved_at"`
}

// FileStore stores the session record in a single file under dir.
type FileStore struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithClock overrides the saved-at time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *FileStore) { s.now = now }
}

// NewFileStore creates a store writing to dir/session.json. The directory is
// created if it does not exist.
func NewFileStore(dir string, logger *slog.Logger, opts ...Option) (*FileStore, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating session dir: %w", err)
	}
	s := &FileStore{
		path:   filepath.Join(dir, "session.json"),
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Save persists u as the current session, replacing any prior record. The
// write goes through a temp file and rename so a crash never leaves a
// truncated session behind.
func (s *FileStore) Save(ctx context.Context, u user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := record{
		UserID:    u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt,
		SavedAt:   s.now().UTC(),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing session: %w", err)
	}

	s.logger.DebugContext(ctx, "session saved", slog.String("user_id", u.ID))
	return nil
}

// Load returns the persisted session user.
func (s *FileStore) Load(ctx context.Context) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}

	return &user.User{
		ID:        rec.UserID,
		Email:     rec.Email,
		Name:      rec.Name,
		Role:      user.Role(rec.Role),
		CreatedAt: rec.CreatedAt,
	}, nil
}

// Clear removes the persisted session. Clearing an absent session is not an
// error.
func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clearing session: %w", err)
	}

	s.logger.DebugContext(ctx, "session cleared")
	return nil
}

// Name implements ports.HealthChecker.
func (s *FileStore) Name() string {
	return "session-store"
}

// HealthCheck verifies the session directory is writable.
func (s *FileStore) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	probe := s.path + ".probe"
	if err := os.WriteFile(probe, nil, 0o600); err != nil {
		return fmt.Errorf("session dir not writable: %w", err)
	}
	return os.Remove(probe)
}
