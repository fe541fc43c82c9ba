package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "buildcheck",
	Short: "Rule-pack compliance checker for building models",
	Long: `Buildcheck evaluates building and site models against declarative
YAML rule packs.

It provides:
  - Predicate evaluation over model graphs (spaces, levels, buildings)
  - Explainable results with per-check facts and regulatory citations
  - A pack catalogue backed by SQLite, a directory or a git repository
  - A validation HTTP API with Prometheus metrics`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
