// Package config defines the service configuration for the validation
// server and CLI, loaded from YAML.
package config

import "time"

// Config is the root configuration structure.
type Config struct {
	// Server contains the HTTP API configuration.
	Server ServerConfig `yaml:"server"`

	// Catalog contains the rule-pack catalogue configuration.
	Catalog CatalogConfig `yaml:"catalog"`

	// Engine contains evaluation behavior settings.
	Engine EngineConfig `yaml:"engine"`

	// Telemetry contains logging and metrics settings.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains the HTTP API server configuration.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Default: "127.0.0.1:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading a request.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration for writing a response.
	// Default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful
	// shutdown. Default: 15s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxBodyBytes limits the size of uploaded model documents.
	// Default: 16MB
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// CatalogConfig contains the rule-pack catalogue configuration.
type CatalogConfig struct {
	// PacksDir is a directory of *.yaml pack files to load.
	PacksDir string `yaml:"packs_dir"`

	// DBPath is the SQLite catalogue path. Empty means an in-memory
	// catalogue.
	DBPath string `yaml:"db_path"`

	// Watch enables re-loading the packs directory on file changes.
	Watch bool `yaml:"watch"`

	// SyncSchedule is a cron expression for periodic re-sync of the
	// pack source. Empty disables scheduled sync.
	SyncSchedule string `yaml:"sync_schedule"`

	// Git configures an optional git-backed pack source. When set, it
	// takes precedence over PacksDir.
	Git GitConfig `yaml:"git"`
}

// GitConfig configures a git-backed pack source.
type GitConfig struct {
	// URL is the remote repository URL. Empty disables the git source.
	URL string `yaml:"url"`

	// Branch is the branch to track. Default: "main"
	Branch string `yaml:"branch"`

	// Path is the pack directory within the repository.
	Path string `yaml:"path"`

	// LocalPath is where the repository is cloned.
	LocalPath string `yaml:"local_path"`

	// Token is an optional bearer token for private repositories.
	Token string `yaml:"token"`
}

// EngineConfig contains evaluation behavior settings.
type EngineConfig struct {
	// OnConfigError selects how rule configuration errors are handled:
	// "skip_rule" (default) records the error on the rule's result and
	// continues; "abort_pack" fails the whole evaluation.
	OnConfigError string `yaml:"on_config_error"`
}

// TelemetryConfig contains logging and metrics settings.
type TelemetryConfig struct {
	// LogLevel is the minimum log level ("debug", "info", "warn",
	// "error"). Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFormat is the log output format ("json", "text").
	// Default: "json"
	LogFormat string `yaml:"log_format"`

	// MetricsNamespace is the Prometheus metric name prefix.
	// Default: "buildcheck"
	MetricsNamespace string `yaml:"metrics_namespace"`
}
