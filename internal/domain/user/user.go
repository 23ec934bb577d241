// Package user defines the identity records managed by the user directory
// collaborator. The stores reference users by id but never own them.
package user

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/edulab/projhub/internal/domain"
)

// Role classifies a directory user. Every role-based branch in the stores
// switches over this type rather than comparing raw strings.
type Role string

const (
	RoleStudent Role = "student"
	RoleMentor  Role = "mentor"
	RoleAdmin   Role = "admin"
)

// IsValid returns true if the role is one of the defined constants.
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleMentor, RoleAdmin:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// User is an identity record. Records are immutable once created; only the
// directory collaborator appends new ones.
type User struct {
	ID        string
	Email     string
	Name      string
	Role      Role
	CreatedAt time.Time
}

// Validate checks business rules for the User record.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with
// per-field details, or nil if all rules pass.
func (u *User) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(u.Name) == "" {
		fields["name"] = domain.MsgRequired
	}
	if strings.TrimSpace(u.Email) == "" {
		fields["email"] = domain.MsgRequired
	} else if _, err := mail.ParseAddress(u.Email); err != nil {
		fields["email"] = fmt.Sprintf("invalid: %q", u.Email)
	}
	if !u.Role.IsValid() {
		fields["role"] = fmt.Sprintf("invalid: %q", u.Role)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
