package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/edulab/projhub/internal/domain"
	"github.com/edulab/projhub/internal/domain/deliverable"
	"github.com/edulab/projhub/internal/domain/user"
)

const msgRequired = "is required"

// CreateTeamRequest represents the JSON body for creating a new team.
type CreateTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatorID   string `json:"creator_id"`
}

// Validate checks that required fields are present.
// Returns a *domain.ValidationError if any checks fail.
func (r *CreateTeamRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Name) == "" {
		fields["name"] = msgRequired
	}
	if strings.TrimSpace(r.Description) == "" {
		fields["description"] = msgRequired
	}
	if strings.TrimSpace(r.CreatorID) == "" {
		fields["creator_id"] = msgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// MembershipRequest represents the JSON body for joining or leaving a team.
type MembershipRequest struct {
	UserID string `json:"user_id"`
}

// Validate checks that required fields are present.
func (r *MembershipRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return &domain.ValidationError{Fields: map[string]string{"user_id": msgRequired}}
	}
	return nil
}

// AssignMentorRequest represents the JSON body for assigning a mentor.
type AssignMentorRequest struct {
	MentorID string `json:"mentor_id"`
}

// Validate checks that required fields are present.
func (r *AssignMentorRequest) Validate() error {
	if strings.TrimSpace(r.MentorID) == "" {
		return &domain.ValidationError{Fields: map[string]string{"mentor_id": msgRequired}}
	}
	return nil
}

// CreateProjectRequest represents the JSON body for creating a new project.
type CreateProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	TeamID      string `json:"team_id"`
}

// Validate checks that required fields are present.
// Returns a *domain.ValidationError if any checks fail.
func (r *CreateProjectRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Title) == "" {
		fields["title"] = msgRequired
	}
	if strings.TrimSpace(r.TeamID) == "" {
		fields["team_id"] = msgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// AddDeliverableRequest represents the JSON body for adding a deliverable to
// a project. The due date uses RFC 3339.
type AddDeliverableRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
}

// Validate checks that required fields are present and the due date parses.
// Returns a *domain.ValidationError if any checks fail.
func (r *AddDeliverableRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Title) == "" {
		fields["title"] = msgRequired
	}
	if strings.TrimSpace(r.DueDate) == "" {
		fields["due_date"] = msgRequired
	} else if _, err := time.Parse(time.RFC3339, r.DueDate); err != nil {
		fields["due_date"] = fmt.Sprintf("invalid RFC 3339 timestamp: %q", r.DueDate)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ParsedDueDate returns the due date as a time. Call Validate first.
func (r *AddDeliverableRequest) ParsedDueDate() time.Time {
	t, _ := time.Parse(time.RFC3339, r.DueDate)
	return t
}

// UpdateDeliverableStatusRequest represents the JSON body for a review
// decision on a deliverable.
type UpdateDeliverableStatusRequest struct {
	Status   string `json:"status"`
	Feedback string `json:"feedback,omitempty"`
}

// Validate checks that the status is one of the review cycle states.
func (r *UpdateDeliverableStatusRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Status) == "" {
		fields["status"] = msgRequired
	} else if !deliverable.Status(r.Status).IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", r.Status)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// SubmitDeliverableRequest represents the JSON body for submitting a
// deliverable for review.
type SubmitDeliverableRequest struct {
	FileURL string `json:"file_url"`
}

// Validate checks that required fields are present.
func (r *SubmitDeliverableRequest) Validate() error {
	if strings.TrimSpace(r.FileURL) == "" {
		return &domain.ValidationError{Fields: map[string]string{"file_url": msgRequired}}
	}
	return nil
}

// LoginRequest represents the JSON body for the login operation.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks that required fields are present.
func (r *LoginRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Email) == "" {
		fields["email"] = msgRequired
	}
	if strings.TrimSpace(r.Password) == "" {
		fields["password"] = msgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// RegisterRequest represents the JSON body for the registration operation.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// Validate checks that required fields are present and the role is known.
// Returns a *domain.ValidationError if any checks fail.
func (r *RegisterRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Email) == "" {
		fields["email"] = msgRequired
	}
	if strings.TrimSpace(r.Password) == "" {
		fields["password"] = msgRequired
	}
	if strings.TrimSpace(r.Name) == "" {
		fields["name"] = msgRequired
	}
	if !user.Role(r.Role).IsValid() {
		fields["role"] = fmt.Sprintf("invalid: %q", r.Role)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
