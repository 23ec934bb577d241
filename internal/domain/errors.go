package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is() checking.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
)

// Invariant violations raised by the team and project stores. Each wraps
// ErrConflict so transport layers can map the whole family uniformly while
// callers still distinguish the specific violation with errors.Is.
var (
	ErrAlreadyMember     = fmt.Errorf("%w: user is already a member of this team", ErrConflict)
	ErrNotMember         = fmt.Errorf("%w: user is not a member of this team", ErrConflict)
	ErrTeamFull          = fmt.Errorf("%w: team is full", ErrConflict)
	ErrAlreadyOnTeam     = fmt.Errorf("%w: user already belongs to another team", ErrConflict)
	ErrDuplicateProject  = fmt.Errorf("%w: team already has a project", ErrConflict)
	ErrInvalidMentor     = fmt.Errorf("%w: user is not a mentor", ErrConflict)
	ErrInvalidTransition = fmt.Errorf("%w: status transition not allowed", ErrConflict)
)

// ValidationError provides programmatic access to field-level validation failures.
// Use errors.Is(err, ErrValidation) for simple checks, or errors.As(err, &verr) to
// access verr.Fields for per-field error details.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// MsgRequired is the shared validation message for mandatory fields.
const MsgRequired = "is required"
