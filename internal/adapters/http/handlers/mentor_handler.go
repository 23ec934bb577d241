package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/edulab/projhub/internal/adapters/http/dto"
	"github.com/edulab/projhub/internal/domain"
	"github.com/edulab/projhub/internal/ports"
)

// MentorHandler handles HTTP requests for the mentor dashboard: assigned
// teams and the pending review queue.
type MentorHandler struct {
	teams   ports.TeamService
	reviews ports.ReviewService
}

// NewMentorHandler creates a new MentorHandler with the given service ports.
func NewMentorHandler(teams ports.TeamService, reviews ports.ReviewService) *MentorHandler {
	return &MentorHandler{teams: teams, reviews: reviews}
}

// ListMentorTeams handles GET /api/v1/mentors/{mentorId}/teams.
func (h *MentorHandler) ListMentorTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teams.MentorTeams(r.Context(), chi.URLParam(r, "mentorId"))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTeamListResponse(teams, h.teams.FormationDeadline()))
}

// ListPendingReviews handles GET /api/v1/mentors/{mentorId}/reviews.
func (h *MentorHandler) ListPendingReviews(w http.ResponseWriter, r *http.Request) {
	pending, err := h.reviews.PendingReviews(r.Context(), chi.URLParam(r, "mentorId"))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToPendingReviewListResponse(pending))
}

// ListRecentActivity handles GET /api/v1/mentors/{mentorId}/activity. The
// optional limit query parameter truncates the feed.
func (h *MentorHandler) ListRecentActivity(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		var err error
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			dto.WriteErrorResponse(w, r, &domain.ValidationError{
				Fields: map[string]string{"limit": "must be a non-negative integer"},
			})
			return
		}
	}

	activity, err := h.reviews.RecentActivity(r.Context(), chi.URLParam(r, "mentorId"), limit)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToActivityListResponse(activity))
}
