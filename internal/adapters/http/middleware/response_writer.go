// Package middleware provides the inbound HTTP request pipeline: panic
// recovery, request and correlation ids, tracing and metrics, request
// logging, and a per-request deadline. Each middleware is a plain
// func(http.Handler) http.Handler; the router applies them in the order
// given, outermost first.
package middleware

import "net/http"

// statusWriter wraps http.ResponseWriter so the recovery, otel, and logging
// middleware can observe the status code and body size after the handler
// returns.
type statusWriter struct {
	http.ResponseWriter
	status int
	wrote  bool
	bytes  int64
}

func wrapWriter(w http.ResponseWriter) *statusWriter {
	return &statusWriter{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader records the first status code written; later calls are
// ignored, matching net/http's own superfluous-WriteHeader behavior.
func (sw *statusWriter) WriteHeader(code int) {
	if sw.wrote {
		return
	}
	sw.status = code
	sw.wrote = true
	sw.ResponseWriter.WriteHeader(code)
}

// Write counts body bytes and marks the implicit 200 a first Write causes.
func (sw *statusWriter) Write(b []byte) (int, error) {
	if !sw.wrote {
		sw.wrote = true
	}
	n, err := sw.ResponseWriter.Write(b)
	sw.bytes += int64(n)
	return n, err
}

// Unwrap exposes the underlying writer so http.ResponseController and
// interface assertions (http.Flusher, http.Hijacker) keep working. The
// websocket upgrade on the events route depends on this.
func (sw *statusWriter) Unwrap() http.ResponseWriter {
	return sw.ResponseWriter
}
