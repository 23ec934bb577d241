package handlers

import (
	"net/http"

	"github.com/edulab/projhub/internal/adapters/http/dto"
	"github.com/edulab/projhub/internal/domain/user"
	"github.com/edulab/projhub/internal/ports"
)

// AuthHandler handles HTTP requests for the mock authentication flow.
type AuthHandler struct {
	svc ports.AuthService
}

// NewAuthHandler creates a new AuthHandler with the given service port.
func NewAuthHandler(svc ports.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	u, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserResponse(u))
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	u, err := h.svc.Register(r.Context(), req.Email, req.Password, req.Name, user.Role(req.Role))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToUserResponse(u))
}

// CurrentUser handles GET /api/v1/auth/me.
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.CurrentUser(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserResponse(u))
}

// Logout handles POST /api/v1/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Logout(r.Context()); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
