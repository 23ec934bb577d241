package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// SensitiveHeaders names the HTTP headers (lowercase) that carry credentials.
// The HTTP logging middleware masks these before emitting header attributes,
// and the masq layer below masks the same names again in case one slips into
// a log record through another path.
var SensitiveHeaders = map[string]bool{
	"authorization": true,
	"x-api-key":     true,
	"cookie":        true,
}

// Value-shaped redaction patterns, applied to every string attribute. These
// catch secrets embedded in otherwise harmless fields, like a bearer token
// pasted into a description.
var (
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`)

	// Three dot-separated base64url segments of 10+ chars each; the length
	// floor keeps version strings like "1.2.3" out of it.
	jwtPattern = regexp.MustCompile(`[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}`)

	apiKeyInlinePattern = regexp.MustCompile(`(?i)(api[_\-]?key|apikey)\s*[:=]\s*\S+`)
)

// newRedactAttr builds the masq ReplaceAttr hook wired into every logger this
// package constructs. Redaction happens by field name for known credential
// fields and by regex for values that escape name-based matching.
func newRedactAttr() func([]string, slog.Attr) slog.Attr {
	var opts []masq.Option

	for name := range SensitiveHeaders {
		opts = append(opts, masq.WithFieldName(name))
	}

	opts = append(opts,
		masq.WithFieldName("password"),
		masq.WithFieldName("secret"),
		masq.WithFieldName("token"),

		// Prefixes cover derived names like "secret_key" and "api_key_v2".
		masq.WithFieldPrefix("secret_"),
		masq.WithFieldPrefix("api_key"),

		masq.WithRegex(bearerPattern),
		masq.WithRegex(jwtPattern),
		masq.WithRegex(apiKeyInlinePattern),
	)

	return masq.New(opts...)
}
