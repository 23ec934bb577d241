package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/edulab/projhub/internal/platform/logging"
)

// Logging returns middleware that logs one entry when a request starts and
// one when it completes, with method, path, status, and duration. It also
// derives a child logger carrying the request and correlation ids and stores
// it in the context for handlers and services to pick up via
// logging.FromContext.
//
// At debug level the request headers are logged too, with credential-bearing
// headers masked.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := r.Context()

			child := logger.With(
				slog.String("request_id", RequestIDFromContext(ctx)),
				slog.String("correlation_id", CorrelationIDFromContext(ctx)),
			)
			ctx = logging.WithLogger(ctx, child)

			child.InfoContext(ctx, "request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)

			if child.Enabled(ctx, slog.LevelDebug) {
				child.DebugContext(ctx, "request headers", redactedHeaders(r.Header)...)
			}

			sw := wrapWriter(w)
			next.ServeHTTP(sw, r.WithContext(ctx))

			child.InfoContext(ctx, "request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// redactedHeaders flattens headers into slog args, masking the names in
// logging.SensitiveHeaders so credentials never reach the log sink even at
// debug level.
func redactedHeaders(headers http.Header) []any {
	args := make([]any, 0, len(headers))
	for name, vals := range headers {
		if logging.SensitiveHeaders[strings.ToLower(name)] {
			args = append(args, slog.String(name, "[REDACTED]"))
			continue
		}
		args = append(args, slog.String(name, strings.Join(vals, ",")))
	}
	return args
}
