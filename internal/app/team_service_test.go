package app_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulab/projhub/internal/adapters/directory"
	"github.com/edulab/projhub/internal/app"
	"github.com/edulab/projhub/internal/app/events"
	"github.com/edulab/projhub/internal/domain"
	"github.com/edulab/projhub/internal/domain/team"
	"github.com/edulab/projhub/internal/domain/user"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// noSleep replaces the simulated latency in tests.
func noSleep(time.Duration) {}

func testDirectory() *directory.Directory {
	return directory.New([]user.User{
		{ID: "student-1", Email: "alex@university.edu", Name: "Alex Rivera", Role: user.RoleStudent},
		{ID: "student-2", Email: "jordan@university.edu", Name: "Jordan Okafor", Role: user.RoleStudent},
		{ID: "mentor-1", Email: "sam@university.edu", Name: "Sam Chen", Role: user.RoleMentor},
	}, testLogger())
}

func newTeamService(initial ...team.Team) *app.TeamService {
	return app.NewTeamService(app.TeamServiceConfig{
		Latency: 300 * time.Millisecond,
		Sleep:   noSleep,
		Initial: initial,
	}, testDirectory(), events.NewHub(), testLogger())
}

func TestTeamService_CreateTeam(t *testing.T) {
	t.Parallel()

	svc := newTeamService()
	ctx := context.Background()

	created, err := svc.CreateTeam(ctx, "Team Alpha", "Distributed systems capstone", "student-1")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, []string{"student-1"}, created.MemberIDs)
	assert.Empty(t, created.MentorID)

	teams, err := svc.ListTeams(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 1)
}

func TestTeamService_CreateTeam_CreatorAlreadyOnTeam(t *testing.T) {
	t.Parallel()

	svc := newTeamService(team.Team{ID: "t1", Name: "Existing", Description: "d", MemberIDs: []string{"student-1"}})

	_, err := svc.CreateTeam(context.Background(), "Second", "d", "student-1")

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "creator_id")
}

func TestTeamService_CreateTeam_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		teamName    string
		description string
		creatorID   string
		wantField   string
	}{
		{name: "blank name", teamName: "  ", description: "d", creatorID: "student-1", wantField: "name"},
		{name: "blank description", teamName: "Alpha", description: "", creatorID: "student-1", wantField: "description"},
		{name: "blank creator", teamName: "Alpha", description: "d", creatorID: "", wantField: "creator_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := newTeamService()
			_, err := svc.CreateTeam(context.Background(), tt.teamName, tt.description, tt.creatorID)

			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields, tt.wantField)
		})
	}
}

func TestTeamService_JoinTeam(t *testing.T) {
	t.Parallel()

	svc := newTeamService(team.Team{ID: "t1", Name: "Alpha", Description: "d", MemberIDs: []string{"student-1"}})

	joined, err := svc.JoinTeam(context.Background(), "t1", "student-2")
	require.NoError(t, err)
	assert.Equal(t, []string{"student-1", "student-2"}, joined.MemberIDs)
}

func TestTeamService_JoinTeam_Failures(t *testing.T) {
	t.Parallel()

	fullMembers := make([]string, 0, team.MaxMembers)
	for i := range team.MaxMembers {
		fullMembers = append(fullMembers, fmt.Sprintf("filler-%d", i))
	}

	tests := []struct {
		name    string
		teamID  string
		userID  string
		wantErr error
	}{
		{name: "unknown team", teamID: "nope", userID: "student-2", wantErr: domain.ErrNotFound},
		{name: "already a member", teamID: "t1", userID: "student-1", wantErr: domain.ErrAlreadyMember},
		{name: "team at capacity", teamID: "t2", userID: "student-2", wantErr: domain.ErrTeamFull},
		{name: "member of another team", teamID: "t2", userID: "student-1", wantErr: domain.ErrTeamFull},
		{name: "on another team", teamID: "t3", userID: "student-1", wantErr: domain.ErrAlreadyOnTeam},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := newTeamService(
				team.Team{ID: "t1", Name: "Alpha", Description: "d", MemberIDs: []string{"student-1"}},
				team.Team{ID: "t2", Name: "Beta", Description: "d", MemberIDs: fullMembers},
				team.Team{ID: "t3", Name: "Gamma", Description: "d", MemberIDs: []string{"student-2"}},
			)

			_, err := svc.JoinTeam(context.Background(), tt.teamID, tt.userID)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTeamService_JoinTeam_ConflictErrorsWrapConflict(t *testing.T) {
	t.Parallel()

	svc := newTeamService(team.Team{ID: "t1", Name: "Alpha", Description: "d", MemberIDs: []string{"student-1"}})

	_, err := svc.JoinTeam(context.Background(), "t1", "student-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestTeamService_LeaveTeam(t *testing.T) {
	t.Parallel()

	svc := newTeamService(team.Team{ID: "t1", Name: "Alpha", Description: "d", MemberIDs: []string{"student-1", "student-2"}})
	ctx := context.Background()

	left, err := svc.LeaveTeam(ctx, "t1", "student-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"student-2"}, left.MemberIDs)

	// Leaving a team you are not on fails rather than silently succeeding.
	_, err = svc.LeaveTeam(ctx, "t1", "student-1")
	assert.ErrorIs(t, err, domain.ErrNotMember)
}

func TestTeamService_LeaveTeam_LastMemberKeepsTeam(t *testing.T) {
	t.Parallel()

	svc := newTeamService(team.Team{ID: "t1", Name: "Alpha", Description: "d", MemberIDs: []string{"student-1"}})
	ctx := context.Background()

	left, err := svc.LeaveTeam(ctx, "t1", "student-1")
	require.NoError(t, err)
	assert.Empty(t, left.MemberIDs)

	// The emptied team remains listed and joinable.
	got, err := svc.GetTeam(ctx, "t1")
	require.NoError(t, err)
	assert.Empty(t, got.MemberIDs)
}

func TestTeamService_AssignMentor(t *testing.T) {
	t.Parallel()

	svc := newTeamService(team.Team{ID: "t1", Name: "Alpha", Description: "d", MemberIDs: []string{"student-1"}})
	ctx := context.Background()

	updated, err := svc.AssignMentor(ctx, "t1", "mentor-1")
	require.NoError(t, err)
	assert.Equal(t, "mentor-1", updated.MentorID)

	teams, err := svc.MentorTeams(ctx, "mentor-1")
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, "t1", teams[0].ID)
}

func TestTeamService_AssignMentor_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		teamID   string
		mentorID string
		wantErr  error
	}{
		{name: "unknown mentor", teamID: "t1", mentorID: "nope", wantErr: domain.ErrInvalidMentor},
		{name: "student as mentor", teamID: "t1", mentorID: "student-2", wantErr: domain.ErrInvalidMentor},
		{name: "unknown team", teamID: "nope", mentorID: "mentor-1", wantErr: domain.ErrNotFound},
		{name: "unknown team beats unknown mentor", teamID: "nope", mentorID: "also-nope", wantErr: domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := newTeamService(team.Team{ID: "t1", Name: "Alpha", Description: "d", MemberIDs: []string{"student-1"}})
			_, err := svc.AssignMentor(context.Background(), tt.teamID, tt.mentorID)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTeamService_MentorTeams_EmptyID(t *testing.T) {
	t.Parallel()

	// Teams without a mentor hold the zero string; an empty query id must
	// not match them.
	svc := newTeamService(
		team.Team{ID: "t1", Name: "Alpha", Description: "d", MemberIDs: []string{"student-1"}},
		team.Team{ID: "t2", Name: "Beta", Description: "d", MemberIDs: []string{"student-2"}},
	)

	teams, err := svc.MentorTeams(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, teams)
}

func TestTeamService_UserTeam(t *testing.T) {
	t.Parallel()

	svc := newTeamService(
		team.Team{ID: "t1", Name: "Alpha", Description: "d", MemberIDs: []string{"student-1"}},
		team.Team{ID: "t2", Name: "Beta", Description: "d", MemberIDs: []string{"student-2"}},
	)
	ctx := context.Background()

	got, err := svc.UserTeam(ctx, "student-2")
	require.NoError(t, err)
	assert.Equal(t, "t2", got.ID)

	_, err = svc.UserTeam(ctx, "unaffiliated")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTeamService_TeamMembers(t *testing.T) {
	t.Parallel()

	// "ghost" does not resolve in the directory and is silently omitted.
	svc := newTeamService(team.Team{ID: "t1", Name: "Alpha", Description: "d", MemberIDs: []string{"student-1", "ghost", "student-2"}})

	members, err := svc.TeamMembers(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "Alex Rivera", members[0].Name)
	assert.Equal(t, "Jordan Okafor", members[1].Name)
}

func TestTeamService_ReturnsClones(t *testing.T) {
	t.Parallel()

	svc := newTeamService(team.Team{ID: "t1", Name: "Alpha", Description: "d", MemberIDs: []string{"student-1"}})
	ctx := context.Background()

	got, err := svc.GetTeam(ctx, "t1")
	require.NoError(t, err)
	got.MemberIDs[0] = "tampered"

	again, err := svc.GetTeam(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, []string{"student-1"}, again.MemberIDs)
}

func TestTeamService_PublishesEvents(t *testing.T) {
	t.Parallel()

	hub := events.NewHub()
	svc := app.NewTeamService(app.TeamServiceConfig{Sleep: noSleep}, testDirectory(), hub, testLogger())
	ch := hub.Subscribe("test")

	created, err := svc.CreateTeam(context.Background(), "Alpha", "d", "student-1")
	require.NoError(t, err)

	select {
	case ev := <-ch:
		assert.Equal(t, events.KindTeamCreated, ev.Kind)
		assert.Equal(t, created.ID, ev.TeamID)
		assert.Equal(t, "student-1", ev.UserID)
	default:
		t.Fatal("expected a team_created event")
	}
}
