// Package config provides configuration loading and validation for the service.
// Configuration is loaded from YAML files with environment variable overrides
// using a layered system: defaults -> base.yaml -> {profile}.yaml -> env vars.
package config

import "time"

// Config holds all configuration for the service.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Store     StoreConfig     `koanf:"store"`
	Session   SessionConfig   `koanf:"session"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// StoreConfig holds in-memory store settings. Latency is the simulated
// network delay applied to every store operation; zero disables it.
// FormationDeadline bounds the team formation window and may be empty.
type StoreConfig struct {
	Latency           time.Duration `koanf:"latency"`
	Seed              bool          `koanf:"seed"`
	FormationDeadline string        `koanf:"formation_deadline"`
}

// ParsedFormationDeadline returns the formation deadline as a time, or the
// zero time when unset. Validate has already checked the format.
func (s *StoreConfig) ParsedFormationDeadline() time.Time {
	if s.FormationDeadline == "" {
		return time.Time{}
	}
	t, _ := time.Parse(time.RFC3339, s.FormationDeadline)
	return t
}

// SessionConfig holds the session file store settings.
type SessionConfig struct {
	Dir string `koanf:"dir"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}
