// Package project defines the Project aggregate: a team's single project and
// its ordered deliverable sequence.
package project

import (
	"fmt"
	"strings"
	"time"

	"github.com/edulab/projhub/internal/domain"
	"github.com/edulab/projhub/internal/domain/deliverable"
)

// Status represents the lifecycle phase of a Project.
type Status string

const (
	StatusPlanning   Status = "planning"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// IsValid returns true if the status is one of the defined constants.
func (s Status) IsValid() bool {
	switch s {
	case StatusPlanning, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// Project belongs to exactly one team; the project store guarantees a team
// owns at most one project. TeamID is the authoritative link; teams carry
// no back-reference. Deliverables keep creation order.
type Project struct {
	ID           string
	Title        string
	Description  string
	TeamID       string
	Status       Status
	Deliverables []deliverable.Deliverable
	CreatedAt    time.Time
}

// Validate checks business rules for the Project entity.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with
// per-field details, or nil if all rules pass.
func (p *Project) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(p.Title) == "" {
		fields["title"] = domain.MsgRequired
	}
	if strings.TrimSpace(p.Description) == "" {
		fields["description"] = domain.MsgRequired
	}
	if strings.TrimSpace(p.TeamID) == "" {
		fields["team_id"] = domain.MsgRequired
	}
	if !p.Status.IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", p.Status)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// Deliverable returns the deliverable with the given id, or nil if the
// project has no such deliverable.
func (p *Project) Deliverable(id int64) *deliverable.Deliverable {
	for i := range p.Deliverables {
		if p.Deliverables[i].ID == id {
			return &p.Deliverables[i]
		}
	}
	return nil
}

// NextDeliverableID returns the next value of the per-project deliverable id
// sequence. Ids are never reused: the sequence is one past the highest id
// ever assigned, not the current count.
func (p *Project) NextDeliverableID() int64 {
	var max int64
	for i := range p.Deliverables {
		if p.Deliverables[i].ID > max {
			max = p.Deliverables[i].ID
		}
	}
	return max + 1
}
