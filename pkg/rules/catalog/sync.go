package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Syncer runs a source's Sync against a store on a cron schedule. It is
// used to keep a long-running server's catalogue current with a remote
// pack repository.
type Syncer struct {
	source   Source
	store    Store
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewSyncer creates a scheduled syncer. The schedule is a standard cron
// expression, e.g. "*/15 * * * *" for every fifteen minutes.
func NewSyncer(source Source, store Store, schedule string, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Syncer{
		source:   source,
		store:    store,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "catalog.syncer"),
	}
}

// Start runs an initial sync, then begins the schedule. If the schedule
// is empty only the initial sync runs.
func (s *Syncer) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.source.Sync(ctx, s.store); err != nil {
		return fmt.Errorf("initial sync failed: %w", err)
	}

	if s.schedule == "" {
		s.logger.Info("sync schedule not configured, catalogue loaded once")
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid sync schedule %q: %w", s.schedule, err)
	}

	if _, err := s.cron.AddFunc(s.schedule, func() { s.run(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule sync: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("catalogue syncer started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// run executes one scheduled sync cycle.
func (s *Syncer) run(ctx context.Context) {
	result, err := s.source.Sync(ctx, s.store)
	if err != nil {
		s.logger.Error("scheduled sync failed", "error", err)
		return
	}

	s.logger.Info("scheduled sync completed",
		"loaded", result.Loaded,
		"skipped", result.Skipped,
		"version", result.Version,
	)
}

// Stop stops the schedule and waits for a running sync to finish.
func (s *Syncer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.running = false
		s.logger.Info("catalogue syncer stopped")
	}
}

// NextRun returns the next scheduled sync time, if any.
func (s *Syncer) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}
