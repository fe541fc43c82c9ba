package config

import "time"

// DefaultConfig returns a configuration with all defaults applied.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddress:   "127.0.0.1:8080",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			MaxBodyBytes:    16 << 20,
		},
		Catalog: CatalogConfig{
			Git: GitConfig{Branch: "main"},
		},
		Engine: EngineConfig{
			OnConfigError: "skip_rule",
		},
		Telemetry: TelemetryConfig{
			LogLevel:         "info",
			LogFormat:        "json",
			MetricsNamespace: "buildcheck",
		},
	}
}

// applyDefaults fills zero-valued fields after loading.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Server.ListenAddress == "" {
		c.Server.ListenAddress = defaults.Server.ListenAddress
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = defaults.Server.ReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = defaults.Server.WriteTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = defaults.Server.ShutdownTimeout
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = defaults.Server.MaxBodyBytes
	}
	if c.Catalog.Git.Branch == "" {
		c.Catalog.Git.Branch = defaults.Catalog.Git.Branch
	}
	if c.Engine.OnConfigError == "" {
		c.Engine.OnConfigError = defaults.Engine.OnConfigError
	}
	if c.Telemetry.LogLevel == "" {
		c.Telemetry.LogLevel = defaults.Telemetry.LogLevel
	}
	if c.Telemetry.LogFormat == "" {
		c.Telemetry.LogFormat = defaults.Telemetry.LogFormat
	}
	if c.Telemetry.MetricsNamespace == "" {
		c.Telemetry.MetricsNamespace = defaults.Telemetry.MetricsNamespace
	}
}
