package ports

import (
	"context"
	"time"

	"github.com/edulab/projhub/internal/domain/deliverable"
	"github.com/edulab/projhub/internal/domain/project"
	"github.com/edulab/projhub/internal/domain/team"
	"github.com/edulab/projhub/internal/domain/user"
)

// TeamService defines the service port for the team store: the authoritative
// holder of all teams. Implemented by the application layer; called by
// inbound adapters (handlers).
type TeamService interface {
	// ListTeams returns all teams in creation order.
	ListTeams(ctx context.Context) ([]team.Team, error)

	// GetTeam returns a single team by id.
	// Returns domain.ErrNotFound if the team does not exist.
	GetTeam(ctx context.Context, id string) (*team.Team, error)

	// CreateTeam creates a team with the creator as its first member.
	// Returns domain.ErrValidation on malformed input and
	// domain.ErrAlreadyOnTeam if the creator already belongs to a team.
	CreateTeam(ctx context.Context, name, description, creatorID string) (*team.Team, error)

	// JoinTeam adds the user to the team's membership.
	// Returns domain.ErrNotFound for an unknown team, domain.ErrAlreadyMember
	// if the user is already on this team, domain.ErrAlreadyOnTeam if the
	// user belongs to a different team, and domain.ErrTeamFull when the
	// membership cap is reached.
	JoinTeam(ctx context.Context, teamID, userID string) (*team.Team, error)

	// LeaveTeam removes the user from the team's membership.
	// Returns domain.ErrNotFound for an unknown team and domain.ErrNotMember
	// if the user is not currently a member.
	LeaveTeam(ctx context.Context, teamID, userID string) (*team.Team, error)

	// AssignMentor binds a mentor to the team, replacing any prior mentor.
	// Returns domain.ErrNotFound for an unknown team and
	// domain.ErrInvalidMentor if the id does not resolve to a mentor-role
	// user in the directory.
	AssignMentor(ctx context.Context, teamID, mentorID string) (*team.Team, error)

	// UserTeam returns the team the user belongs to. Cross-team exclusivity
	// guarantees at most one match. Returns domain.ErrNotFound if the user
	// is on no team.
	UserTeam(ctx context.Context, userID string) (*team.Team, error)

	// TeamMembers resolves the team's member ids against the user directory,
	// silently omitting ids that no longer resolve.
	// Returns domain.ErrNotFound for an unknown team.
	TeamMembers(ctx context.Context, teamID string) ([]user.User, error)

	// MentorTeams returns the teams the given mentor is assigned to.
	MentorTeams(ctx context.Context, mentorID string) ([]team.Team, error)

	// FormationDeadline returns the configured team formation deadline.
	FormationDeadline() time.Time
}

// ProjectService defines the service port for the project store: the
// authoritative holder of all projects and their deliverables.
type ProjectService interface {
	// ListProjects returns all projects in creation order.
	ListProjects(ctx context.Context) ([]project.Project, error)

	// GetProject returns a single project by id.
	// Returns domain.ErrNotFound if the project does not exist.
	GetProject(ctx context.Context, id string) (*project.Project, error)

	// TeamProject returns the project owned by the given team.
	// Returns domain.ErrNotFound if the team has no project.
	TeamProject(ctx context.Context, teamID string) (*project.Project, error)

	// CreateProject creates a project in the planning state with no
	// deliverables. Returns domain.ErrDuplicateProject if the team already
	// owns a project.
	CreateProject(ctx context.Context, title, description, teamID string) (*project.Project, error)

	// AddDeliverable appends a pending deliverable, assigning the next id in
	// the project-scoped sequence. Only the title, description and due date
	// of d are used. Returns domain.ErrNotFound for an unknown project.
	AddDeliverable(ctx context.Context, projectID string, d deliverable.Deliverable) (*deliverable.Deliverable, error)

	// UpdateDeliverableStatus moves the deliverable to the given status,
	// recording feedback if non-empty. The review cycle is enforced:
	// domain.ErrInvalidTransition is returned for moves outside it.
	// Returns domain.ErrNotFound for an unknown project or deliverable.
	UpdateDeliverableStatus(ctx context.Context, projectID string, deliverableID int64, status deliverable.Status, feedback string) (*deliverable.Deliverable, error)

	// SubmitDeliverable marks the deliverable submitted with the given file
	// URL, stamping the submission time. Submission succeeds from any prior
	// status so rework can always be resubmitted. Returns
	// domain.ErrValidation for a blank URL and domain.ErrNotFound for an
	// unknown project or deliverable.
	SubmitDeliverable(ctx context.Context, projectID string, deliverableID int64, fileURL string) (*deliverable.Deliverable, error)
}

// PendingReview pairs a submitted deliverable with the project and team it
// belongs to, for a mentor's review queue.
type PendingReview struct {
	Deliverable deliverable.Deliverable
	Project     project.Project
	Team        team.Team
}

// ActivityItem is one recent deliverable change on a mentor's teams.
// OccurredAt is the later of the deliverable's update and submission stamps.
type ActivityItem struct {
	Deliverable deliverable.Deliverable
	Project     project.Project
	Team        team.Team
	OccurredAt  time.Time
}

// ReviewService defines the read-side port for mentor review queries. It
// derives views across the team and project stores without mutating either.
type ReviewService interface {
	// PendingReviews returns all submitted deliverables across the mentor's
	// teams, in team order.
	PendingReviews(ctx context.Context, mentorID string) ([]PendingReview, error)

	// RecentActivity returns the latest deliverable changes across the
	// mentor's teams, most recent first. A limit of zero returns all.
	RecentActivity(ctx context.Context, mentorID string, limit int) ([]ActivityItem, error)
}

// AuthService defines the mock authentication port. Login is a directory
// lookup, not a credential check; the logged-in record is persisted through
// the session store and survives restarts until logout.
type AuthService interface {
	// Login resolves the email against the directory and persists the user
	// as the current session. The password must be non-blank but is not
	// verified. Returns domain.ErrNotFound for an unknown email.
	Login(ctx context.Context, email, password string) (*user.User, error)

	// Register appends a new user to the directory and logs them in.
	// Returns domain.ErrConflict if the email is already registered.
	Register(ctx context.Context, email, password, name string, role user.Role) (*user.User, error)

	// CurrentUser returns the persisted session user.
	// Returns domain.ErrNotFound if nobody is logged in.
	CurrentUser(ctx context.Context) (*user.User, error)

	// Logout clears the persisted session. Logging out with no session is
	// a no-op.
	Logout(ctx context.Context) error
}
