// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edulab/projhub/internal/adapters/http/handlers"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given.
func NewRouter(
	authHandler *handlers.AuthHandler,
	teamHandler *handlers.TeamHandler,
	projectHandler *handlers.ProjectHandler,
	mentorHandler *handlers.MentorHandler,
	userHandler *handlers.UserHandler,
	eventsHandler *handlers.EventsHandler,
	healthHandler *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	// Health endpoints (outside /api/v1 prefix).
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	// API v1 routes.
	r.Route("/api/v1", func(r chi.Router) {
		// Mock authentication flow.
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/register", authHandler.Register)
		r.Get("/auth/me", authHandler.CurrentUser)
		r.Post("/auth/logout", authHandler.Logout)

		// Team formation and membership.
		r.Get("/teams", teamHandler.ListTeams)
		r.Post("/teams", teamHandler.CreateTeam)
		r.Get("/teams/{teamId}", teamHandler.GetTeam)
		r.Get("/teams/{teamId}/members", teamHandler.ListTeamMembers)
		r.Post("/teams/{teamId}/members", teamHandler.JoinTeam)
		r.Delete("/teams/{teamId}/members/{userId}", teamHandler.LeaveTeam)
		r.Put("/teams/{teamId}/mentor", teamHandler.AssignMentor)
		r.Get("/teams/{teamId}/project", projectHandler.GetTeamProject)
		r.Get("/users/{userId}/team", teamHandler.GetUserTeam)

		// Directory lookups.
		r.Get("/users", userHandler.ListUsers)

		// Projects and the deliverable review cycle.
		r.Get("/projects", projectHandler.ListProjects)
		r.Post("/projects", projectHandler.CreateProject)
		r.Get("/projects/{projectId}", projectHandler.GetProject)
		r.Get("/projects/{projectId}/deadlines", projectHandler.ListDeadlines)
		r.Post("/projects/{projectId}/deliverables", projectHandler.AddDeliverable)
		r.Patch("/projects/{projectId}/deliverables/{deliverableId}", projectHandler.UpdateDeliverableStatus)
		r.Post("/projects/{projectId}/deliverables/{deliverableId}/submission", projectHandler.SubmitDeliverable)

		// Mentor dashboard.
		r.Get("/mentors/{mentorId}/teams", mentorHandler.ListMentorTeams)
		r.Get("/mentors/{mentorId}/reviews", mentorHandler.ListPendingReviews)
		r.Get("/mentors/{mentorId}/activity", mentorHandler.ListRecentActivity)

		// Change-event stream.
		r.Get("/events", eventsHandler.Stream)
	})

	return r
}
