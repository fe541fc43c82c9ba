package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/WSG23/optimal-build-sub004/pkg/cli"
	"github.com/WSG23/optimal-build-sub004/pkg/config"
	"github.com/WSG23/optimal-build-sub004/pkg/rules/catalog"
	"github.com/WSG23/optimal-build-sub004/pkg/rules/engine"
	"github.com/WSG23/optimal-build-sub004/pkg/server"
	"github.com/WSG23/optimal-build-sub004/pkg/telemetry/logging"
	"github.com/WSG23/optimal-build-sub004/pkg/telemetry/metrics"
)

var serveFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the validation API server",
	Long: `Run the validation HTTP API.

The server loads rule packs from the configured catalogue sources and
evaluates posted GeoJSON models against them.

Examples:
  # Start with defaults (in-memory catalogue, no packs)
  buildcheck serve

  # Start with a configuration file
  buildcheck serve --config /etc/buildcheck/config.yaml

  # Override the listen address
  buildcheck serve --listen 0.0.0.0:8080

  # Validate the configuration without starting
  buildcheck serve --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.listenAddress, "listen", "l", "", "override listen address")
	serveCmd.Flags().StringVar(&serveFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	serveCmd.Flags().BoolVar(&serveFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if cfgFile != "" {
		var err error
		cfg, err = config.LoadFromFile(cfgFile)
		if err != nil {
			return cli.NewConfigError("", err.Error())
		}
	}

	// Flag overrides
	if serveFlags.listenAddress != "" {
		cfg.Server.ListenAddress = serveFlags.listenAddress
	}
	if serveFlags.logLevel != "" {
		cfg.Telemetry.LogLevel = serveFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.LogLevel = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.Telemetry.LogLevel,
		Format: cfg.Telemetry.LogFormat,
	})
	if err != nil {
		return cli.NewConfigError("telemetry", err.Error())
	}
	slog.SetDefault(logger)

	if serveFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	engineConfig := engine.DefaultConfig()
	if cfg.Engine.OnConfigError == "abort_pack" {
		engineConfig.OnConfigError = engine.AbortPack
	}
	evaluator, err := engine.NewEvaluator(engineConfig, logger)
	if err != nil {
		return cli.NewConfigError("engine", err.Error())
	}

	store, err := openStore(cfg.Catalog, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cli.SetupSignalHandler()

	source, err := openSource(cfg.Catalog, logger)
	if err != nil {
		return err
	}
	if source != nil {
		syncer := catalog.NewSyncer(source, store, cfg.Catalog.SyncSchedule, logger)
		if err := syncer.Start(ctx); err != nil {
			return cli.NewCommandError("serve", err)
		}
		defer syncer.Stop()
	}

	if cfg.Catalog.Watch {
		dirSource := catalog.NewDirSource(cfg.Catalog.PacksDir, logger)
		watcher := catalog.NewDirWatcher(cfg.Catalog.PacksDir, dirSource, store, 0, logger)
		go func() {
			if err := watcher.Watch(ctx); err != nil {
				logger.Error("pack watcher failed", "error", err)
			}
		}()
	}

	collector := metrics.NewCollector(metrics.Config{
		Namespace: cfg.Telemetry.MetricsNamespace,
	}, nil)

	srv := server.New(cfg.Server, store, evaluator, collector, logger)
	if err := srv.ListenAndServe(ctx); err != nil {
		return cli.NewCommandError("serve", err)
	}
	return nil
}

// openStore builds the catalogue store: SQLite when a db path is
// configured, in-memory otherwise.
func openStore(cfg config.CatalogConfig, logger *slog.Logger) (catalog.Store, error) {
	if cfg.DBPath == "" {
		logger.Info("using in-memory pack catalogue")
		return catalog.NewMemoryStore(), nil
	}

	store, err := catalog.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return nil, cli.NewConfigError("catalog.db_path", err.Error())
	}
	logger.Info("pack catalogue opened", "path", cfg.DBPath)
	return store, nil
}

// openSource builds the pack source. Git takes precedence over the
// packs directory; nil means no source is configured.
func openSource(cfg config.CatalogConfig, logger *slog.Logger) (catalog.Source, error) {
	if cfg.Git.URL != "" {
		source, err := catalog.NewGitSource(catalog.GitSourceConfig{
			URL:       cfg.Git.URL,
			Branch:    cfg.Git.Branch,
			Path:      cfg.Git.Path,
			LocalPath: cfg.Git.LocalPath,
			Token:     cfg.Git.Token,
		}, logger)
		if err != nil {
			return nil, cli.NewConfigError("catalog.git", err.Error())
		}
		return source, nil
	}

	if cfg.PacksDir != "" {
		return catalog.NewDirSource(cfg.PacksDir, logger), nil
	}
	return nil, nil
}
