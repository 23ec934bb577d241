package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRecovery_PanicBecomes500(t *testing.T) {
	t.Parallel()

	var logBuf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logBuf, nil))

	handler := Recovery(logger)(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		panic("deliverable index out of range")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/projects/p1", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q, want problem+json", ct)
	}

	logged := logBuf.String()
	if !strings.Contains(logged, "panic recovered") {
		t.Error("log is missing the recovery entry")
	}
	if !strings.Contains(logged, "deliverable index out of range") {
		t.Error("log is missing the panic value")
	}
	if strings.Contains(rec.Body.String(), "deliverable index") {
		t.Error("panic value leaked into the HTTP response")
	}
}

func TestRecovery_NoPanicPassesThrough(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.DiscardHandler)
	handler := Recovery(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil))

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
}

func TestRecovery_HeadersAlreadyWritten(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.DiscardHandler)
	handler := Recovery(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		panic("mid-stream failure")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/teams", nil))

	// The 200 already went out; no second status or problem body follows.
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want the originally written %d", rec.Code, http.StatusOK)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}
}
