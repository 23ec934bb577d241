package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStatusWriter_CapturesStatus(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	sw := wrapWriter(rec)

	sw.WriteHeader(http.StatusConflict)

	if sw.status != http.StatusConflict {
		t.Errorf("status = %d, want %d", sw.status, http.StatusConflict)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("recorder code = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestStatusWriter_ImplicitOK(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	sw := wrapWriter(rec)

	if _, err := sw.Write([]byte("body")); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	if sw.status != http.StatusOK {
		t.Errorf("status = %d, want %d after bare Write", sw.status, http.StatusOK)
	}
	if !sw.wrote {
		t.Error("wrote = false, want true after Write")
	}
}

func TestStatusWriter_SecondWriteHeaderIgnored(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	sw := wrapWriter(rec)

	sw.WriteHeader(http.StatusNotFound)
	sw.WriteHeader(http.StatusOK)

	if sw.status != http.StatusNotFound {
		t.Errorf("status = %d, want first-written %d", sw.status, http.StatusNotFound)
	}
}

func TestStatusWriter_CountsBytes(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	sw := wrapWriter(rec)

	if _, err := sw.Write([]byte("hello ")); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if _, err := sw.Write([]byte("world")); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	if sw.bytes != 11 {
		t.Errorf("bytes = %d, want 11", sw.bytes)
	}
	if rec.Body.String() != "hello world" {
		t.Errorf("body = %q, want %q", rec.Body.String(), "hello world")
	}
}

func TestStatusWriter_Unwrap(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	sw := wrapWriter(rec)

	if got := sw.Unwrap(); got != http.ResponseWriter(rec) {
		t.Error("Unwrap() did not return the wrapped writer")
	}
}
