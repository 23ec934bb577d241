// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"time"

	"github.com/edulab/projhub/internal/domain/deliverable"
	"github.com/edulab/projhub/internal/domain/project"
	"github.com/edulab/projhub/internal/domain/team"
	"github.com/edulab/projhub/internal/domain/user"
	"github.com/edulab/projhub/internal/ports"
)

// UserResponse represents a directory user in HTTP responses.
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// ToUserResponse converts a domain User entity to an HTTP response DTO.
func ToUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// UserListResponse represents a list of users in HTTP responses.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Count int            `json:"count"`
}

// ToUserListResponse converts a slice of domain User entities to an HTTP
// list response DTO.
func ToUserListResponse(users []user.User) UserListResponse {
	items := make([]UserResponse, len(users))
	for i := range users {
		items[i] = ToUserResponse(&users[i])
	}
	return UserListResponse{Users: items, Count: len(items)}
}

// TeamResponse represents a single team in HTTP responses.
type TeamResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	MemberIDs   []string `json:"member_ids"`
	MemberCount int      `json:"member_count"`
	MaxMembers  int      `json:"max_members"`
	MentorID    string   `json:"mentor_id,omitempty"`
	CreatedAt   string   `json:"created_at"`
}

// ToTeamResponse converts a domain Team entity to an HTTP response DTO.
func ToTeamResponse(t *team.Team) TeamResponse {
	memberIDs := t.MemberIDs
	if memberIDs == nil {
		memberIDs = []string{}
	}
	return TeamResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		MemberIDs:   memberIDs,
		MemberCount: len(t.MemberIDs),
		MaxMembers:  team.MaxMembers,
		MentorID:    t.MentorID,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
}

// TeamListResponse represents a list of teams in HTTP responses.
type TeamListResponse struct {
	Teams             []TeamResponse `json:"teams"`
	Count             int            `json:"count"`
	FormationDeadline string         `json:"formation_deadline,omitempty"`
}

// ToTeamListResponse converts a slice of domain Team entities to an HTTP
// list response DTO. A zero deadline is omitted.
func ToTeamListResponse(teams []team.Team, formationDeadline time.Time) TeamListResponse {
	items := make([]TeamResponse, len(teams))
	for i := range teams {
		items[i] = ToTeamResponse(&teams[i])
	}
	resp := TeamListResponse{Teams: items, Count: len(items)}
	if !formationDeadline.IsZero() {
		resp.FormationDeadline = formationDeadline.Format(time.RFC3339)
	}
	return resp
}

// DeliverableResponse represents a single deliverable in HTTP responses.
type DeliverableResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"due_date"`
	Status      string `json:"status"`
	FileURL     string `json:"file_url,omitempty"`
	Feedback    string `json:"feedback,omitempty"`
	SubmittedAt string `json:"submitted_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// ToDeliverableResponse converts a domain Deliverable entity to an HTTP
// response DTO. Zero timestamps are omitted.
func ToDeliverableResponse(d *deliverable.Deliverable) DeliverableResponse {
	resp := DeliverableResponse{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		DueDate:     d.DueDate.Format(time.RFC3339),
		Status:      d.Status.String(),
		FileURL:     d.FileURL,
		Feedback:    d.Feedback,
	}
	if !d.SubmittedAt.IsZero() {
		resp.SubmittedAt = d.SubmittedAt.Format(time.RFC3339)
	}
	if !d.UpdatedAt.IsZero() {
		resp.UpdatedAt = d.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

// ProjectResponse represents a single project in HTTP responses, including
// the derived progress figures the dashboard renders.
type ProjectResponse struct {
	ID              string                `json:"id"`
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	TeamID          string                `json:"team_id"`
	Status          string                `json:"status"`
	Deliverables    []DeliverableResponse `json:"deliverables"`
	Progress        int                   `json:"progress"`
	StatusBreakdown map[string]int        `json:"status_breakdown"`
	CreatedAt       string                `json:"created_at"`
}

// ToProjectResponse converts a domain Project entity to an HTTP response
// DTO. Progress and the status breakdown are derived from the deliverable
// sequence at conversion time.
func ToProjectResponse(p *project.Project) ProjectResponse {
	ds := make([]DeliverableResponse, len(p.Deliverables))
	for i := range p.Deliverables {
		ds[i] = ToDeliverableResponse(&p.Deliverables[i])
	}

	breakdown := make(map[string]int, 4)
	for status, n := range deliverable.StatusBreakdown(p.Deliverables) {
		breakdown[status.String()] = n
	}

	return ProjectResponse{
		ID:              p.ID,
		Title:           p.Title,
		Description:     p.Description,
		TeamID:          p.TeamID,
		Status:          p.Status.String(),
		Deliverables:    ds,
		Progress:        deliverable.Progress(p.Deliverables),
		StatusBreakdown: breakdown,
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
	}
}

// ProjectListResponse represents a list of projects in HTTP responses.
type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
	Count    int               `json:"count"`
}

// ToProjectListResponse converts a slice of domain Project entities to an
// HTTP list response DTO.
func ToProjectListResponse(projects []project.Project) ProjectListResponse {
	items := make([]ProjectResponse, len(projects))
	for i := range projects {
		items[i] = ToProjectResponse(&projects[i])
	}
	return ProjectListResponse{Projects: items, Count: len(items)}
}

// DeadlineListResponse represents the upcoming-deadline view of a project.
type DeadlineListResponse struct {
	Deadlines []DeliverableResponse `json:"deadlines"`
	Count     int                   `json:"count"`
}

// ToDeadlineListResponse converts an upcoming-deadline slice to an HTTP
// list response DTO.
func ToDeadlineListResponse(ds []deliverable.Deliverable) DeadlineListResponse {
	items := make([]DeliverableResponse, len(ds))
	for i := range ds {
		items[i] = ToDeliverableResponse(&ds[i])
	}
	return DeadlineListResponse{Deadlines: items, Count: len(items)}
}

// PendingReviewResponse represents one submitted deliverable awaiting a
// mentor decision, with enough project and team context to render the queue.
type PendingReviewResponse struct {
	Deliverable  DeliverableResponse `json:"deliverable"`
	ProjectID    string              `json:"project_id"`
	ProjectTitle string              `json:"project_title"`
	TeamID       string              `json:"team_id"`
	TeamName     string              `json:"team_name"`
}

// PendingReviewListResponse represents a mentor's review queue.
type PendingReviewListResponse struct {
	Reviews []PendingReviewResponse `json:"reviews"`
	Count   int                     `json:"count"`
}

// ToPendingReviewListResponse converts the review queue to an HTTP list
// response DTO.
func ToPendingReviewListResponse(reviews []ports.PendingReview) PendingReviewListResponse {
	items := make([]PendingReviewResponse, len(reviews))
	for i := range reviews {
		items[i] = PendingReviewResponse{
			Deliverable:  ToDeliverableResponse(&reviews[i].Deliverable),
			ProjectID:    reviews[i].Project.ID,
			ProjectTitle: reviews[i].Project.Title,
			TeamID:       reviews[i].Team.ID,
			TeamName:     reviews[i].Team.Name,
		}
	}
	return PendingReviewListResponse{Reviews: items, Count: len(items)}
}

// ActivityResponse represents one recent deliverable change on a mentor's
// teams.
type ActivityResponse struct {
	Deliverable  DeliverableResponse `json:"deliverable"`
	ProjectID    string              `json:"project_id"`
	ProjectTitle string              `json:"project_title"`
	TeamID       string              `json:"team_id"`
	TeamName     string              `json:"team_name"`
	OccurredAt   time.Time           `json:"occurred_at"`
}

// ActivityListResponse represents a mentor's recent-activity feed, most
// recent first.
type ActivityListResponse struct {
	Activity []ActivityResponse `json:"activity"`
	Count    int                `json:"count"`
}

// ToActivityListResponse converts the activity feed to an HTTP list
// response DTO.
func ToActivityListResponse(items []ports.ActivityItem) ActivityListResponse {
	out := make([]ActivityResponse, len(items))
	for i := range items {
		out[i] = ActivityResponse{
			Deliverable:  ToDeliverableResponse(&items[i].Deliverable),
			ProjectID:    items[i].Project.ID,
			ProjectTitle: items[i].Project.Title,
			TeamID:       items[i].Team.ID,
			TeamName:     items[i].Team.Name,
			OccurredAt:   items[i].OccurredAt,
		}
	}
	return ActivityListResponse{Activity: out, Count: len(out)}
}
