package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/edulab/projhub/internal/adapters/http/dto"
	"github.com/edulab/projhub/internal/domain"
	"github.com/edulab/projhub/internal/domain/deliverable"
	"github.com/edulab/projhub/internal/ports"
)

// ProjectHandler handles HTTP requests for projects and their deliverable
// review cycle.
type ProjectHandler struct {
	svc ports.ProjectService
	now func() time.Time
}

// NewProjectHandler creates a new ProjectHandler with the given service port.
func NewProjectHandler(svc ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc, now: time.Now}
}

// ListProjects handles GET /api/v1/projects.
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.svc.ListProjects(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProjectListResponse(projects))
}

// CreateProject handles POST /api/v1/projects.
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProjectRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.svc.CreateProject(r.Context(), req.Title, req.Description, req.TeamID)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToProjectResponse(created))
}

// GetProject handles GET /api/v1/projects/{projectId}.
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProject(r.Context(), chi.URLParam(r, "projectId"))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProjectResponse(p))
}

// GetTeamProject handles GET /api/v1/teams/{teamId}/project.
func (h *ProjectHandler) GetTeamProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.TeamProject(r.Context(), chi.URLParam(r, "teamId"))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProjectResponse(p))
}

// AddDeliverable handles POST /api/v1/projects/{projectId}/deliverables.
func (h *ProjectHandler) AddDeliverable(w http.ResponseWriter, r *http.Request) {
	var req dto.AddDeliverableRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	added, err := h.svc.AddDeliverable(r.Context(), chi.URLParam(r, "projectId"), deliverable.Deliverable{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.ParsedDueDate(),
	})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToDeliverableResponse(added))
}

// UpdateDeliverableStatus handles
// PATCH /api/v1/projects/{projectId}/deliverables/{deliverableId}.
func (h *ProjectHandler) UpdateDeliverableStatus(w http.ResponseWriter, r *http.Request) {
	deliverableID, err := parseDeliverableID(r, "deliverableId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.UpdateDeliverableStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.svc.UpdateDeliverableStatus(r.Context(), chi.URLParam(r, "projectId"),
		deliverableID, deliverable.Status(req.Status), req.Feedback)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToDeliverableResponse(updated))
}

// SubmitDeliverable handles
// POST /api/v1/projects/{projectId}/deliverables/{deliverableId}/submission.
func (h *ProjectHandler) SubmitDeliverable(w http.ResponseWriter, r *http.Request) {
	deliverableID, err := parseDeliverableID(r, "deliverableId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.SubmitDeliverableRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	submitted, err := h.svc.SubmitDeliverable(r.Context(), chi.URLParam(r, "projectId"), deliverableID, req.FileURL)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToDeliverableResponse(submitted))
}

// ListDeadlines handles GET /api/v1/projects/{projectId}/deadlines. The
// optional limit query parameter truncates the list.
func (h *ProjectHandler) ListDeadlines(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProject(r.Context(), chi.URLParam(r, "projectId"))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			dto.WriteErrorResponse(w, r, &domain.ValidationError{
				Fields: map[string]string{"limit": "must be a non-negative integer"},
			})
			return
		}
	}

	upcoming := deliverable.UpcomingDeadlines(p.Deliverables, h.now(), limit)
	writeJSON(w, http.StatusOK, dto.ToDeadlineListResponse(upcoming))
}
