package handlers

import (
	"net/http"

	"github.com/edulab/projhub/internal/adapters/http/dto"
	"github.com/edulab/projhub/internal/domain"
	"github.com/edulab/projhub/internal/domain/user"
	"github.com/edulab/projhub/internal/ports"
)

// UserHandler exposes read access to the user directory, used by the frontend
// to populate mentor pickers and roster views.
type UserHandler struct {
	directory ports.UserDirectory
}

// NewUserHandler creates a new UserHandler backed by the given directory.
func NewUserHandler(directory ports.UserDirectory) *UserHandler {
	return &UserHandler{directory: directory}
}

// ListUsers handles GET /api/v1/users. The role query parameter is required
// and selects which slice of the directory to return.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	role := user.Role(r.URL.Query().Get("role"))
	if !role.IsValid() {
		dto.WriteErrorResponse(w, r, &domain.ValidationError{
			Fields: map[string]string{"role": "must be one of: student, mentor, admin"},
		})
		return
	}

	users, err := h.directory.ListByRole(r.Context(), role)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserListResponse(users))
}
