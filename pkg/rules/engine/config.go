package engine

import "fmt"

// ConfigErrorMode determines how the evaluator handles a configuration
// error in the pack.
type ConfigErrorMode string

const (
	// SkipRule records the error on the affected rule's result and
	// continues with the remaining rules. This is the default.
	SkipRule ConfigErrorMode = "skip-rule"

	// AbortPack stops the evaluation at the first configuration error
	// and returns it from Evaluate.
	AbortPack ConfigErrorMode = "abort-pack"
)

// Config configures an Evaluator.
type Config struct {
	// OnConfigError selects the configuration-error policy.
	// Default: SkipRule.
	OnConfigError ConfigErrorMode
}

// DefaultConfig returns the default evaluator configuration.
func DefaultConfig() *Config {
	return &Config{
		OnConfigError: SkipRule,
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.OnConfigError {
	case SkipRule, AbortPack:
		return nil
	default:
		return fmt.Errorf("invalid config-error mode %q", c.OnConfigError)
	}
}

// WithConfigErrorMode sets the configuration-error policy.
func (c *Config) WithConfigErrorMode(mode ConfigErrorMode) *Config {
	c.OnConfigError = mode
	return c
}
