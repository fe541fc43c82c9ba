// Package cli carries helpers shared by the buildcheck subcommands:
// error types with command context, output formatting and signal-aware
// shutdown contexts.
package cli
