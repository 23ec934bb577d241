// Package handlers provides HTTP request handlers for the service's API endpoints.
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edulab/projhub/internal/adapters/http/dto"
	"github.com/edulab/projhub/internal/ports"
)

// TeamHandler handles HTTP requests for team formation, membership, and
// mentor assignment.
type TeamHandler struct {
	svc ports.TeamService
}

// NewTeamHandler creates a new TeamHandler with the given service port.
func NewTeamHandler(svc ports.TeamService) *TeamHandler {
	return &TeamHandler{svc: svc}
}

// ListTeams handles GET /api/v1/teams.
func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.svc.ListTeams(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTeamListResponse(teams, h.svc.FormationDeadline()))
}

// CreateTeam handles POST /api/v1/teams.
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTeamRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.svc.CreateTeam(r.Context(), req.Name, req.Description, req.CreatorID)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToTeamResponse(created))
}

// GetTeam handles GET /api/v1/teams/{teamId}.
func (h *TeamHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.GetTeam(r.Context(), chi.URLParam(r, "teamId"))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTeamResponse(t))
}

// JoinTeam handles POST /api/v1/teams/{teamId}/members.
func (h *TeamHandler) JoinTeam(w http.ResponseWriter, r *http.Request) {
	var req dto.MembershipRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	t, err := h.svc.JoinTeam(r.Context(), chi.URLParam(r, "teamId"), req.UserID)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTeamResponse(t))
}

// LeaveTeam handles DELETE /api/v1/teams/{teamId}/members/{userId}.
func (h *TeamHandler) LeaveTeam(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.LeaveTeam(r.Context(), chi.URLParam(r, "teamId"), chi.URLParam(r, "userId"))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTeamResponse(t))
}

// ListTeamMembers handles GET /api/v1/teams/{teamId}/members.
func (h *TeamHandler) ListTeamMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.TeamMembers(r.Context(), chi.URLParam(r, "teamId"))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserListResponse(members))
}

// AssignMentor handles PUT /api/v1/teams/{teamId}/mentor.
func (h *TeamHandler) AssignMentor(w http.ResponseWriter, r *http.Request) {
	var req dto.AssignMentorRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	t, err := h.svc.AssignMentor(r.Context(), chi.URLParam(r, "teamId"), req.MentorID)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTeamResponse(t))
}

// GetUserTeam handles GET /api/v1/users/{userId}/team.
func (h *TeamHandler) GetUserTeam(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.UserTeam(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTeamResponse(t))
}
