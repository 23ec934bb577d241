// Package logging builds the slog loggers used across the service and moves
// them through context.
//
//	logger := logging.New("info", "json", os.Stderr)
//
// The HTTP logging middleware stores a request-scoped child logger with
// WithLogger; handlers and services read it back with FromContext. Service
// error logs carry the operation name, the entity ids involved, and the full
// error chain:
//
//	logger.ErrorContext(ctx, "failed to join team",
//	    slog.String("operation", "JoinTeam"),
//	    slog.String("team_id", teamID),
//	    slog.Any("error", err),
//	)
//
// Every logger built here redacts credential-shaped fields and values; see
// newRedactAttr.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

type contextKey struct{}

// New creates a configured *slog.Logger writing to w.
//
// level is one of "debug", "info", "warn", "error"; anything else falls back
// to info. format "text" selects the text handler, everything else (the
// usual value is "json") the JSON handler. Debug level also turns on source
// locations.
func New(level, format string, w io.Writer) *slog.Logger {
	lvl := parseLevel(level)

	opts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   lvl == slog.LevelDebug,
		ReplaceAttr: newRedactAttr(),
	}

	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler)
}

// WithLogger stores logger in the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default() when none
// is there.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
