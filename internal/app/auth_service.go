package app

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/edulab/projhub/internal/domain"
	"github.com/edulab/projhub/internal/domain/user"
	"github.com/edulab/projhub/internal/ports"
)

// Compile-time check that AuthService implements ports.AuthService.
var _ ports.AuthService = (*AuthService)(nil)

// AuthServiceConfig holds the mock auth flow's tunables; see
// TeamServiceConfig for the latency contract.
type AuthServiceConfig struct {
	Latency time.Duration
	Sleep   func(time.Duration)
}

// AuthService implements the mock login flow: a directory lookup plus one
// persisted session record. Passwords are required but never verified.
type AuthService struct {
	directory ports.UserDirectory
	session   ports.SessionStore
	logger    *slog.Logger

	latency time.Duration
	sleep   func(time.Duration)
}

// NewAuthService creates the auth flow over the directory and session store.
func NewAuthService(cfg AuthServiceConfig, directory ports.UserDirectory, session ports.SessionStore, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	return &AuthService{
		directory: directory,
		session:   session,
		logger:    logger,
		latency:   cfg.Latency,
		sleep:     sleep,
	}
}

func (s *AuthService) simulateLatency() {
	if s.latency > 0 {
		s.sleep(s.latency)
	}
}

// Login resolves the email against the directory and persists the user as
// the current session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*user.User, error) {
	s.logger.InfoContext(ctx, "logging in", slog.String("email", email))
	s.simulateLatency()

	fields := make(map[string]string)
	if strings.TrimSpace(email) == "" {
		fields["email"] = domain.MsgRequired
	}
	if strings.TrimSpace(password) == "" {
		fields["password"] = domain.MsgRequired
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	u, err := s.directory.FindByEmail(ctx, email)
	if err != nil {
		s.logger.WarnContext(ctx, "login failed",
			slog.String("operation", "Login"),
			slog.String("email", email),
			slog.Any("error", err),
		)
		return nil, err
	}

	if err := s.session.Save(ctx, *u); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist session",
			slog.String("operation", "Login"),
			slog.String("user_id", u.ID),
			slog.Any("error", err),
		)
		return nil, err
	}
	return u, nil
}

// Register appends a new user to the directory and logs them in.
func (s *AuthService) Register(ctx context.Context, email, password, name string, role user.Role) (*user.User, error) {
	s.logger.InfoContext(ctx, "registering user", slog.String("email", email), slog.String("role", role.String()))
	s.simulateLatency()

	if strings.TrimSpace(password) == "" {
		return nil, &domain.ValidationError{Fields: map[string]string{"password": domain.MsgRequired}}
	}

	created, err := s.directory.Register(ctx, user.User{
		Email: email,
		Name:  name,
		Role:  role,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "registration failed",
			slog.String("operation", "Register"),
			slog.String("email", email),
			slog.Any("error", err),
		)
		return nil, err
	}

	if err := s.session.Save(ctx, *created); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist session",
			slog.String("operation", "Register"),
			slog.String("user_id", created.ID),
			slog.Any("error", err),
		)
		return nil, err
	}
	return created, nil
}

// CurrentUser returns the persisted session user.
func (s *AuthService) CurrentUser(ctx context.Context) (*user.User, error) {
	return s.session.Load(ctx)
}

// Logout clears the persisted session.
func (s *AuthService) Logout(ctx context.Context) error {
	s.logger.InfoContext(ctx, "logging out")
	return s.session.Clear(ctx)
}
