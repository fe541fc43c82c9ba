package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.ListenAddress != "127.0.0.1:8080" {
		t.Errorf("listen address = %q", cfg.Server.ListenAddress)
	}
	if cfg.Engine.OnConfigError != "skip_rule" {
		t.Errorf("on_config_error = %q", cfg.Engine.OnConfigError)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFromBytes(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`
server:
  listen_address: "0.0.0.0:9090"
  read_timeout: 10s
catalog:
  packs_dir: /etc/buildcheck/packs
  db_path: /var/lib/buildcheck/packs.db
  watch: true
  sync_schedule: "*/15 * * * *"
engine:
  on_config_error: abort_pack
telemetry:
  log_level: debug
  log_format: text
`))
	if err != nil {
		t.Fatalf("LoadFromBytes() error = %v", err)
	}

	if cfg.Server.ListenAddress != "0.0.0.0:9090" {
		t.Errorf("listen address = %q", cfg.Server.ListenAddress)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("read timeout = %v", cfg.Server.ReadTimeout)
	}
	// Unset fields pick up defaults.
	if cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("write timeout default not applied: %v", cfg.Server.WriteTimeout)
	}
	if cfg.Catalog.PacksDir != "/etc/buildcheck/packs" || !cfg.Catalog.Watch {
		t.Errorf("catalog = %+v", cfg.Catalog)
	}
	if cfg.Engine.OnConfigError != "abort_pack" {
		t.Errorf("on_config_error = %q", cfg.Engine.OnConfigError)
	}
	if cfg.Telemetry.LogLevel != "debug" || cfg.Telemetry.MetricsNamespace != "buildcheck" {
		t.Errorf("telemetry = %+v", cfg.Telemetry)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  listen_address: localhost:8888\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if cfg.Server.ListenAddress != "localhost:8888" {
		t.Errorf("listen address = %q", cfg.Server.ListenAddress)
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("missing file loaded without error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty listen address", func(c *Config) { c.Server.ListenAddress = "" }},
		{"negative body limit", func(c *Config) { c.Server.MaxBodyBytes = -1 }},
		{"unknown error mode", func(c *Config) { c.Engine.OnConfigError = "explode" }},
		{"bad cron schedule", func(c *Config) { c.Catalog.SyncSchedule = "often" }},
		{"watch without dir", func(c *Config) { c.Catalog.Watch = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadFromBytes_Invalid(t *testing.T) {
	if _, err := LoadFromBytes([]byte("server: [")); err == nil {
		t.Error("malformed YAML accepted")
	}
	if _, err := LoadFromBytes([]byte("engine:\n  on_config_error: explode\n")); err == nil {
		t.Error("invalid config accepted")
	}
}
