// Package app provides the application services that own the in-memory
// collections: the team store, the project store, the mentor review queries,
// and the mock auth flow. Each store holds its collection as a field,
// validates before every write, and publishes a change event after every
// committed mutation.
package app

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/edulab/projhub/internal/app/events"
	"github.com/edulab/projhub/internal/domain"
	"github.com/edulab/projhub/internal/domain/team"
	"github.com/edulab/projhub/internal/domain/user"
	"github.com/edulab/projhub/internal/ports"
)

// Compile-time check that TeamService implements ports.TeamService.
var _ ports.TeamService = (*TeamService)(nil)

// TeamServiceConfig holds the store's tunables. Latency simulates the
// network delay of a real backend and is served by Sleep (nil means
// time.Sleep; tests inject a no-op). The sleep deliberately ignores context
// cancellation: once an operation is under way it always commits.
type TeamServiceConfig struct {
	Latency           time.Duration
	FormationDeadline time.Time
	Sleep             func(time.Duration)
	Now               func() time.Time
	Initial           []team.Team
}

// TeamService is the authoritative holder of all teams. It enforces the
// membership cap, cross-team exclusivity, and mentor-role resolution against
// the user directory.
type TeamService struct {
	mu    sync.RWMutex
	teams []team.Team

	directory ports.UserDirectory
	hub       *events.Hub
	logger    *slog.Logger

	latency  time.Duration
	deadline time.Time
	sleep    func(time.Duration)
	now      func() time.Time
}

// NewTeamService creates the team store, seeded with cfg.Initial.
func NewTeamService(cfg TeamServiceConfig, directory ports.UserDirectory, hub *events.Hub, logger *slog.Logger) *TeamService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &TeamService{
		teams:     slices.Clone(cfg.Initial),
		directory: directory,
		hub:       hub,
		logger:    logger,
		latency:   cfg.Latency,
		deadline:  cfg.FormationDeadline,
		sleep:     sleep,
		now:       now,
	}
}

// simulateLatency blocks for the configured delay. It does not watch ctx:
// an armed operation always runs to completion and commits.
func (s *TeamService) simulateLatency() {
	if s.latency > 0 {
		s.sleep(s.latency)
	}
}

// ListTeams returns all teams in creation order.
func (s *TeamService) ListTeams(ctx context.Context) ([]team.Team, error) {
	s.simulateLatency()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]team.Team, len(s.teams))
	for i := range s.teams {
		out[i] = cloneTeam(s.teams[i])
	}
	return out, nil
}

// GetTeam returns a single team by id.
func (s *TeamService) GetTeam(ctx context.Context, id string) (*team.Team, error) {
	s.simulateLatency()

	s.mu.RLock()
	defer s.mu.RUnlock()

	t := s.findLocked(id)
	if t == nil {
		return nil, domain.ErrNotFound
	}
	c := cloneTeam(*t)
	return &c, nil
}

// CreateTeam creates a team with the creator as its first member.
func (s *TeamService) CreateTeam(ctx context.Context, name, description, creatorID string) (*team.Team, error) {
	s.logger.InfoContext(ctx, "creating team", slog.String("name", name))
	s.simulateLatency()

	s.mu.Lock()
	defer s.mu.Unlock()

	nt := team.Team{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		MemberIDs:   []string{creatorID},
		CreatedAt:   s.now().UTC(),
	}
	if creatorID == "" {
		return nil, &domain.ValidationError{Fields: map[string]string{"creator_id": domain.MsgRequired}}
	}
	if err := nt.Validate(); err != nil {
		return nil, err
	}
	if s.memberTeamLocked(creatorID) != nil {
		return nil, &domain.ValidationError{Fields: map[string]string{"creator_id": "already belongs to a team"}}
	}

	s.teams = append(s.teams, nt)
	s.hub.Publish(events.Event{Kind: events.KindTeamCreated, TeamID: nt.ID, UserID: creatorID, At: s.now()})

	c := cloneTeam(nt)
	return &c, nil
}

// JoinTeam adds the user to the team's membership.
func (s *TeamService) JoinTeam(ctx context.Context, teamID, userID string) (*team.Team, error) {
	s.logger.InfoContext(ctx, "joining team", slog.String("team_id", teamID), slog.String("user_id", userID))
	s.simulateLatency()

	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findLocked(teamID)
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if t.HasMember(userID) {
		return nil, domain.ErrAlreadyMember
	}
	if t.IsFull() {
		return nil, domain.ErrTeamFull
	}
	if other := s.memberTeamLocked(userID); other != nil {
		return nil, domain.ErrAlreadyOnTeam
	}

	t.MemberIDs = append(t.MemberIDs, userID)
	s.hub.Publish(events.Event{Kind: events.KindTeamJoined, TeamID: teamID, UserID: userID, At: s.now()})

	c := cloneTeam(*t)
	return &c, nil
}

// LeaveTeam removes the user from the team's membership.
func (s *TeamService) LeaveTeam(ctx context.Context, teamID, userID string) (*team.Team, error) {
	s.logger.InfoContext(ctx, "leaving team", slog.String("team_id", teamID), slog.String("user_id", userID))
	s.simulateLatency()

	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findLocked(teamID)
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if !t.HasMember(userID) {
		return nil, domain.ErrNotMember
	}

	t.MemberIDs = slices.DeleteFunc(t.MemberIDs, func(id string) bool { return id == userID })
	s.hub.Publish(events.Event{Kind: events.KindTeamLeft, TeamID: teamID, UserID: userID, At: s.now()})

	c := cloneTeam(*t)
	return &c, nil
}

// AssignMentor binds a mentor to the team, replacing any prior mentor.
func (s *TeamService) AssignMentor(ctx context.Context, teamID, mentorID string) (*team.Team, error) {
	s.logger.InfoContext(ctx, "assigning mentor", slog.String("team_id", teamID), slog.String("mentor_id", mentorID))
	s.simulateLatency()

	// Confirm the team exists before touching the directory, so an unknown
	// team reports not-found even when the mentor id is also bad.
	s.mu.RLock()
	known := s.findLocked(teamID) != nil
	s.mu.RUnlock()
	if !known {
		return nil, domain.ErrNotFound
	}

	// Resolve the mentor outside the write lock; the directory is a separate
	// collaborator and must not be called under it.
	mentor, err := s.directory.FindByID(ctx, mentorID)
	if err != nil || mentor.Role != user.RoleMentor {
		return nil, domain.ErrInvalidMentor
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findLocked(teamID)
	if t == nil {
		return nil, domain.ErrNotFound
	}

	t.MentorID = mentorID
	s.hub.Publish(events.Event{Kind: events.KindMentorAssigned, TeamID: teamID, UserID: mentorID, At: s.now()})

	c := cloneTeam(*t)
	return &c, nil
}

// UserTeam returns the team the user belongs to.
func (s *TeamService) UserTeam(ctx context.Context, userID string) (*team.Team, error) {
	s.simulateLatency()

	s.mu.RLock()
	defer s.mu.RUnlock()

	t := s.memberTeamLocked(userID)
	if t == nil {
		return nil, domain.ErrNotFound
	}
	c := cloneTeam(*t)
	return &c, nil
}

// TeamMembers resolves the team's member ids against the user directory,
// silently omitting ids that no longer resolve.
func (s *TeamService) TeamMembers(ctx context.Context, teamID string) ([]user.User, error) {
	s.simulateLatency()

	s.mu.RLock()
	t := s.findLocked(teamID)
	if t == nil {
		s.mu.RUnlock()
		return nil, domain.ErrNotFound
	}
	memberIDs := slices.Clone(t.MemberIDs)
	s.mu.RUnlock()

	members := make([]user.User, 0, len(memberIDs))
	for _, id := range memberIDs {
		u, err := s.directory.FindByID(ctx, id)
		if err != nil {
			s.logger.WarnContext(ctx, "member id did not resolve",
				slog.String("operation", "TeamMembers"),
				slog.String("team_id", teamID),
				slog.String("user_id", id),
			)
			continue
		}
		members = append(members, *u)
	}
	return members, nil
}

// MentorTeams returns the teams the given mentor is assigned to.
func (s *TeamService) MentorTeams(ctx context.Context, mentorID string) ([]team.Team, error) {
	s.simulateLatency()

	// An empty id would otherwise match every team with no mentor assigned.
	if mentorID == "" {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []team.Team
	for i := range s.teams {
		if s.teams[i].MentorID == mentorID {
			out = append(out, cloneTeam(s.teams[i]))
		}
	}
	return out, nil
}

// FormationDeadline returns the configured team formation deadline.
func (s *TeamService) FormationDeadline() time.Time {
	return s.deadline
}

// findLocked returns a pointer into the collection. Callers hold s.mu.
func (s *TeamService) findLocked(id string) *team.Team {
	for i := range s.teams {
		if s.teams[i].ID == id {
			return &s.teams[i]
		}
	}
	return nil
}

// memberTeamLocked returns the team holding userID, if any. Callers hold s.mu.
func (s *TeamService) memberTeamLocked(userID string) *team.Team {
	for i := range s.teams {
		if s.teams[i].HasMember(userID) {
			return &s.teams[i]
		}
	}
	return nil
}

// cloneTeam copies a team so callers cannot mutate the stored collection.
func cloneTeam(t team.Team) team.Team {
	t.MemberIDs = slices.Clone(t.MemberIDs)
	return t
}
