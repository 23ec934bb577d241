package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulab/projhub/internal/app"
	"github.com/edulab/projhub/internal/app/events"
	"github.com/edulab/projhub/internal/domain/deliverable"
	"github.com/edulab/projhub/internal/domain/project"
	"github.com/edulab/projhub/internal/domain/team"
)

func newReviewFixture(teams []team.Team, projects []project.Project) *app.ReviewService {
	hub := events.NewHub()
	teamSvc := app.NewTeamService(app.TeamServiceConfig{Sleep: noSleep, Initial: teams}, testDirectory(), hub, testLogger())
	projSvc := app.NewProjectService(app.ProjectServiceConfig{Sleep: noSleep, Initial: projects}, hub, testLogger())
	return app.NewReviewService(teamSvc, projSvc, testLogger())
}

func TestReviewService_PendingReviews(t *testing.T) {
	t.Parallel()

	due := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	svc := newReviewFixture(
		[]team.Team{
			{ID: "t1", Name: "Alpha", Description: "d", MemberIDs: []string{"student-1"}, MentorID: "mentor-1"},
			{ID: "t2", Name: "Beta", Description: "d", MemberIDs: []string{"student-2"}, MentorID: "mentor-1"},
			{ID: "t3", Name: "Gamma", Description: "d", MemberIDs: []string{"other"}, MentorID: "someone-else"},
		},
		[]project.Project{
			{
				ID: "p1", Title: "Navigator", TeamID: "t1", Status: project.StatusInProgress,
				Deliverables: []deliverable.Deliverable{
					{ID: 1, Title: "Doc", DueDate: due, Status: deliverable.StatusSubmitted},
					{ID: 2, Title: "Prototype", DueDate: due, Status: deliverable.StatusPending},
				},
			},
			{
				ID: "p3", Title: "Other", TeamID: "t3", Status: project.StatusInProgress,
				Deliverables: []deliverable.Deliverable{
					{ID: 1, Title: "Not ours", DueDate: due, Status: deliverable.StatusSubmitted},
				},
			},
		},
	)

	pending, err := svc.PendingReviews(context.Background(), "mentor-1")
	require.NoError(t, err)

	// Only t1's submitted deliverable qualifies: t2 has no project and t3
	// belongs to another mentor.
	require.Len(t, pending, 1)
	assert.Equal(t, int64(1), pending[0].Deliverable.ID)
	assert.Equal(t, "p1", pending[0].Project.ID)
	assert.Equal(t, "t1", pending[0].Team.ID)
}

func TestReviewService_PendingReviews_NoTeams(t *testing.T) {
	t.Parallel()

	svc := newReviewFixture(nil, nil)

	pending, err := svc.PendingReviews(context.Background(), "mentor-1")
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestReviewService_RecentActivity(t *testing.T) {
	t.Parallel()

	due := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	older := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 9, 2, 10, 0, 0, 0, time.UTC)
	newest := time.Date(2025, 9, 3, 10, 0, 0, 0, time.UTC)

	svc := newReviewFixture(
		[]team.Team{
			{ID: "t1", Name: "Alpha", Description: "d", MemberIDs: []string{"student-1"}, MentorID: "mentor-1"},
			{ID: "t2", Name: "Beta", Description: "d", MemberIDs: []string{"student-2"}, MentorID: "mentor-1"},
		},
		[]project.Project{
			{
				ID: "p1", Title: "Navigator", TeamID: "t1", Status: project.StatusInProgress,
				Deliverables: []deliverable.Deliverable{
					{ID: 1, Title: "Doc", DueDate: due, Status: deliverable.StatusApproved, UpdatedAt: older},
					// Submission stamp is later than the update stamp, so it wins.
					{ID: 2, Title: "Prototype", DueDate: due, Status: deliverable.StatusSubmitted, UpdatedAt: older, SubmittedAt: newest},
					{ID: 3, Title: "Untouched", DueDate: due, Status: deliverable.StatusPending},
				},
			},
			{
				ID: "p2", Title: "Tracker", TeamID: "t2", Status: project.StatusInProgress,
				Deliverables: []deliverable.Deliverable{
					{ID: 1, Title: "Report", DueDate: due, Status: deliverable.StatusNeedsChanges, UpdatedAt: newer},
				},
			},
		},
	)

	activity, err := svc.RecentActivity(context.Background(), "mentor-1", 0)
	require.NoError(t, err)

	// Untouched deliverables contribute nothing; the rest sort newest first.
	require.Len(t, activity, 3)
	assert.Equal(t, int64(2), activity[0].Deliverable.ID)
	assert.Equal(t, newest, activity[0].OccurredAt)
	assert.Equal(t, "p2", activity[1].Project.ID)
	assert.Equal(t, int64(1), activity[2].Deliverable.ID)
	assert.Equal(t, "t1", activity[2].Team.ID)

	limited, err := svc.RecentActivity(context.Background(), "mentor-1", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, newest, limited[0].OccurredAt)
}

func TestReviewService_RecentActivity_NoTeams(t *testing.T) {
	t.Parallel()

	svc := newReviewFixture(nil, nil)

	activity, err := svc.RecentActivity(context.Background(), "mentor-1", 5)
	require.NoError(t, err)
	assert.Empty(t, activity)
}
