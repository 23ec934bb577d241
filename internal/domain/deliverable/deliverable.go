// Package deliverable defines the gradable unit of project work: its review
// status state machine and the pure derivations the presentation layer reads
// (progress, status breakdown, upcoming deadlines).
package deliverable

import (
	"fmt"
	"strings"
	"time"

	"github.com/edulab/projhub/internal/domain"
)

// Deliverable is a gradable unit of work inside a project. The id is a
// per-project sequence value, unique within the parent project only.
// FileURL is set on submission, Feedback by the reviewer.
type Deliverable struct {
	ID          int64
	Title       string
	Description string
	DueDate     time.Time
	Status      Status
	FileURL     string
	Feedback    string
	SubmittedAt time.Time
	UpdatedAt   time.Time
}

// Validate checks business rules for the Deliverable entity.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with
// per-field details, or nil if all rules pass.
func (d *Deliverable) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(d.Title) == "" {
		fields["title"] = domain.MsgRequired
	}
	if strings.TrimSpace(d.Description) == "" {
		fields["description"] = domain.MsgRequired
	}
	if d.DueDate.IsZero() {
		fields["due_date"] = domain.MsgRequired
	}
	if !d.Status.IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", d.Status)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
