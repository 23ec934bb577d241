package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/edulab/projhub/internal/platform/logging"
)

func logLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var m map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &m); err != nil {
		t.Fatalf("log output is not one JSON object: %v\n%s", err, buf.String())
	}
	return m
}

func TestNew_LevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New("warn", "json", &buf)

	logger.Info("suppressed")
	logger.Warn("emitted")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Error("info entry emitted at warn level")
	}
	if !strings.Contains(out, "emitted") {
		t.Error("warn entry missing")
	}
}

func TestNew_UnknownLevelDefaultsToInfo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New("chatty", "json", &buf)

	logger.Debug("suppressed")
	logger.Info("emitted")

	if strings.Contains(buf.String(), "suppressed") {
		t.Error("debug entry emitted, want info as the fallback level")
	}
	if !strings.Contains(buf.String(), "emitted") {
		t.Error("info entry missing")
	}
}

func TestNew_TextFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New("info", "text", &buf)

	logger.Info("team created", slog.String("team_id", "t1"))

	out := buf.String()
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("text format produced JSON: %s", out)
	}
	if !strings.Contains(out, "team_id=t1") {
		t.Errorf("text output missing attribute: %s", out)
	}
}

func TestNew_JSONFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New("info", "json", &buf)

	logger.Info("team created", slog.String("team_id", "t1"))

	m := logLine(t, &buf)
	if m["msg"] != "team created" {
		t.Errorf("msg = %v", m["msg"])
	}
	if m["team_id"] != "t1" {
		t.Errorf("team_id = %v", m["team_id"])
	}
}

func TestNew_RedactsCredentialFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New("info", "json", &buf)

	logger.Info("login attempt",
		slog.String("email", "alex@university.edu"),
		slog.String("password", "hunter2"),
		slog.String("token", "tok-abc"),
	)

	out := buf.String()
	if strings.Contains(out, "hunter2") {
		t.Error("password value reached the log output")
	}
	if strings.Contains(out, "tok-abc") {
		t.Error("token value reached the log output")
	}
	if !strings.Contains(out, "alex@university.edu") {
		t.Error("harmless field was redacted")
	}
}

func TestNew_RedactsBearerValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New("info", "json", &buf)

	// The secret hides inside an innocently named field; only the value
	// pattern can catch it.
	logger.Info("upstream call", slog.String("detail", "sent Bearer abc123def456 downstream"))

	if strings.Contains(buf.String(), "abc123def456") {
		t.Errorf("bearer token survived redaction: %s", buf.String())
	}
}

func TestNew_RedactsInlineAPIKeys(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New("info", "json", &buf)

	logger.Info("config dump", slog.String("detail", "api_key=sk-9999 loaded"))

	if strings.Contains(buf.String(), "sk-9999") {
		t.Errorf("inline api key survived redaction: %s", buf.String())
	}
}

func TestFromContext_RoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New("info", "json", &buf)

	ctx := logging.WithLogger(context.Background(), logger)
	logging.FromContext(ctx).Info("via context")

	if !strings.Contains(buf.String(), "via context") {
		t.Error("context-carried logger did not write to its sink")
	}
}

func TestFromContext_Fallback(t *testing.T) {
	t.Parallel()

	if logging.FromContext(context.Background()) == nil {
		t.Error("FromContext returned nil, want slog.Default fallback")
	}
}
