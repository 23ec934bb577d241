package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/edulab/projhub/internal/adapters/directory"
	"github.com/edulab/projhub/internal/adapters/session"
	"github.com/edulab/projhub/internal/app"
	"github.com/edulab/projhub/internal/app/events"
	"github.com/edulab/projhub/internal/domain/deliverable"
	"github.com/edulab/projhub/internal/domain/project"
	"github.com/edulab/projhub/internal/domain/team"
	"github.com/edulab/projhub/internal/domain/user"
)

var testTime = time.Date(2025, 9, 1, 15, 4, 5, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func noSleep(time.Duration) {}

func withChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func testDirectory() *directory.Directory {
	return directory.New([]user.User{
		{ID: "student-1", Email: "alex@university.edu", Name: "Alex Rivera", Role: user.RoleStudent, CreatedAt: testTime},
		{ID: "student-2", Email: "jordan@university.edu", Name: "Jordan Okafor", Role: user.RoleStudent, CreatedAt: testTime},
		{ID: "mentor-1", Email: "sam@university.edu", Name: "Sam Chen", Role: user.RoleMentor, CreatedAt: testTime},
	}, testLogger())
}

func testTeamService(initial ...team.Team) *app.TeamService {
	return app.NewTeamService(app.TeamServiceConfig{
		Sleep:   noSleep,
		Initial: initial,
	}, testDirectory(), events.NewHub(), testLogger())
}

func testProjectService(initial ...project.Project) *app.ProjectService {
	return app.NewProjectService(app.ProjectServiceConfig{
		Sleep:   noSleep,
		Initial: initial,
	}, events.NewHub(), testLogger())
}

func testAuthService(t *testing.T) *app.AuthService {
	t.Helper()
	store, err := session.NewFileStore(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("creating session store: %v", err)
	}
	return app.NewAuthService(app.AuthServiceConfig{Sleep: noSleep}, testDirectory(), store, testLogger())
}

func validTeam() team.Team {
	return team.Team{
		ID:          "t1",
		Name:        "Alpha",
		Description: "Capstone crew",
		MemberIDs:   []string{"student-1"},
		CreatedAt:   testTime,
	}
}

func validProject() project.Project {
	return project.Project{
		ID:          "p1",
		Title:       "Campus Navigator",
		Description: "Indoor maps",
		TeamID:      "t1",
		Status:      project.StatusInProgress,
		Deliverables: []deliverable.Deliverable{
			{ID: 1, Title: "Requirements doc", DueDate: testTime.AddDate(0, 1, 0), Status: deliverable.StatusPending},
		},
		CreatedAt: testTime,
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON body: %v", err)
	}
	return buf
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	return result
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}
