package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.Server.ListenAddress == "" {
		return fmt.Errorf("server.listen_address cannot be empty")
	}
	if c.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("server.max_body_bytes cannot be negative")
	}

	switch c.Engine.OnConfigError {
	case "skip_rule", "abort_pack":
	default:
		return fmt.Errorf("engine.on_config_error must be %q or %q, got %q",
			"skip_rule", "abort_pack", c.Engine.OnConfigError)
	}

	if c.Catalog.SyncSchedule != "" {
		if _, err := cron.ParseStandard(c.Catalog.SyncSchedule); err != nil {
			return fmt.Errorf("catalog.sync_schedule is not a valid cron expression: %w", err)
		}
	}

	if c.Catalog.Watch && c.Catalog.PacksDir == "" {
		return fmt.Errorf("catalog.watch requires catalog.packs_dir")
	}

	return nil
}
