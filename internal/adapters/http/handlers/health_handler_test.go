package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/edulab/projhub/internal/adapters/http/handlers"
	"github.com/edulab/projhub/internal/platform/health"
	"github.com/edulab/projhub/internal/ports"
)

// stubChecker reports a fixed health result under a fixed name.
type stubChecker struct {
	name string
	err  error
}

func (c stubChecker) Name() string                        { return c.name }
func (c stubChecker) HealthCheck(_ context.Context) error { return c.err }

var _ ports.HealthChecker = stubChecker{}

// --- Liveness ---

func TestLiveness_AlwaysOK(t *testing.T) {
	t.Parallel()

	h := handlers.NewHealthHandler(health.New())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	h.Liveness(rec, req)

	requireStatus(t, rec, http.StatusOK)

	resp := decodeJSON[map[string]string](t, rec)
	if resp["status"] != "ok" {
		t.Errorf("status = %q, want %q", resp["status"], "ok")
	}
}

// --- Readiness ---

func TestReadiness_AllHealthy(t *testing.T) {
	t.Parallel()

	registry := health.New()
	registry.Register(stubChecker{name: "user-directory"})

	h := handlers.NewHealthHandler(registry)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	h.Readiness(rec, req)

	requireStatus(t, rec, http.StatusOK)

	resp := decodeJSON[map[string]any](t, rec)
	if resp["status"] != "ready" {
		t.Errorf("status = %q, want %q", resp["status"], "ready")
	}
	checks, ok := resp["checks"].(map[string]any)
	if !ok {
		t.Fatal("checks field not a map")
	}
	if checks["user-directory"] != "ok" {
		t.Errorf("user-directory check = %v, want %q", checks["user-directory"], "ok")
	}
}

func TestReadiness_Unhealthy(t *testing.T) {
	t.Parallel()

	registry := health.New()
	registry.Register(stubChecker{name: "session-store", err: errors.New("session dir not writable")})
	registry.Register(stubChecker{name: "user-directory"})

	h := handlers.NewHealthHandler(registry)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	h.Readiness(rec, req)

	requireStatus(t, rec, http.StatusServiceUnavailable)

	resp := decodeJSON[map[string]any](t, rec)
	if resp["status"] != "not_ready" {
		t.Errorf("status = %q, want %q", resp["status"], "not_ready")
	}
	checks, ok := resp["checks"].(map[string]any)
	if !ok {
		t.Fatal("checks field not a map")
	}
	if checks["session-store"] != "session dir not writable" {
		t.Errorf("session-store check = %v", checks["session-store"])
	}
	if checks["user-directory"] != "ok" {
		t.Errorf("user-directory check = %v, want %q", checks["user-directory"], "ok")
	}
}

func TestReadiness_NoCheckers(t *testing.T) {
	t.Parallel()

	h := handlers.NewHealthHandler(health.New())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	h.Readiness(rec, req)

	requireStatus(t, rec, http.StatusOK)
}
