package middleware

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
)

var uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	t.Parallel()

	var seen string
	handler := RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/teams", nil))

	if !uuidPattern.MatchString(seen) {
		t.Errorf("context request id = %q, want a UUID", seen)
	}
	if got := rec.Header().Get(headerRequestID); got != seen {
		t.Errorf("response header = %q, want the context id %q", got, seen)
	}
}

func TestRequestID_KeepsCallerSuppliedID(t *testing.T) {
	t.Parallel()

	var seen string
	handler := RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/teams", nil)
	req.Header.Set(headerRequestID, "caller-id-42")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen != "caller-id-42" {
		t.Errorf("context request id = %q, want the caller's id", seen)
	}
	if got := rec.Header().Get(headerRequestID); got != "caller-id-42" {
		t.Errorf("response header = %q, want the caller's id echoed", got)
	}
}

func TestRequestIDFromContext_Unset(t *testing.T) {
	t.Parallel()

	if got := RequestIDFromContext(t.Context()); got != "" {
		t.Errorf("RequestIDFromContext = %q, want empty without middleware", got)
	}
}
