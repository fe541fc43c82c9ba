package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/WSG23/optimal-build-sub004/pkg/rules/ast"
)

const validPackYAML = `
slug: residential-checks
name: Residential Checks
version: 1.0.0
rules:
  - id: min-space-height
    target: spaces
    predicate:
      field: height
      operator: ">="
      value: 3.5
`

const secondPackYAML = `
slug: fire-safety
version: 2.1.0
rules:
  - id: doors-rated
    target: doors
    predicate:
      field: metadata.rating
      operator: in
      value: [FD30, FD60]
`

// brokenPackYAML has an unknown target; it parses but fails validation.
const brokenPackYAML = `
slug: broken-pack
version: 1.0.0
rules:
  - id: bad-target
    target: roofs
    predicate:
      field: height
      operator: ">"
      value: 0
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func samplePack() *ast.RulePack {
	return &ast.RulePack{
		Slug:    "residential-checks",
		Name:    "Residential Checks",
		Version: "1.0.0",
		Rules: []*ast.Rule{{
			ID:     "min-space-height",
			Target: "spaces",
			Predicate: &ast.PredicateNode{
				Kind: ast.KindLeaf, Field: "height",
				Operator: ast.OpGreaterEqual, Value: 3.5, HasValue: true,
			},
		}},
	}
}

// storeContract exercises the Store behavior shared by all backends.
func storeContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := store.Get(ctx, "residential-checks"); !errors.Is(err, ErrPackNotFound) {
		t.Fatalf("Get() on empty store = %v, want ErrPackNotFound", err)
	}

	if err := store.Put(ctx, samplePack(), []byte(validPackYAML)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	pack, err := store.Get(ctx, "residential-checks")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if pack.Version != "1.0.0" || len(pack.Rules) != 1 {
		t.Errorf("Get() = %q v%s with %d rules", pack.Slug, pack.Version, len(pack.Rules))
	}

	infos, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("List() has %d entries, want 1", len(infos))
	}
	info := infos[0]
	if info.Slug != "residential-checks" || info.Rules != 1 || info.UpdatedAt.IsZero() {
		t.Errorf("List() entry = %+v", info)
	}

	// Put with the same slug replaces.
	updated := samplePack()
	updated.Version = "1.1.0"
	if err := store.Put(ctx, updated, []byte(validPackYAML)); err != nil {
		t.Fatalf("Put() replace error = %v", err)
	}
	infos, _ = store.List(ctx)
	if len(infos) != 1 {
		t.Errorf("replace grew the catalogue to %d entries", len(infos))
	}

	if err := store.Delete(ctx, "residential-checks"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := store.Delete(ctx, "residential-checks"); !errors.Is(err, ErrPackNotFound) {
		t.Errorf("second Delete() = %v, want ErrPackNotFound", err)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	storeContract(t, store)
}

func TestSQLiteStore(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "packs.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	defer store.Close()

	storeContract(t, store)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packs.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	if err := store.Put(ctx, samplePack(), []byte(validPackYAML)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	pack, err := reopened.Get(ctx, "residential-checks")
	if err != nil {
		t.Fatalf("Get() after reopen error = %v", err)
	}
	if pack.Rules[0].ID != "min-space-height" {
		t.Errorf("pack did not survive reopen: %+v", pack)
	}
}

func TestSQLiteStore_EmptyPath(t *testing.T) {
	if _, err := NewSQLiteStore(""); err == nil {
		t.Fatal("empty path accepted")
	}
}

func writePackDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestDirSource_Sync(t *testing.T) {
	dir := writePackDir(t, map[string]string{
		"residential.yaml": validPackYAML,
		"fire.yml":         secondPackYAML,
		"broken.yaml":      brokenPackYAML,
		"notes.txt":        "not a pack",
		".hidden.yaml":     validPackYAML,
	})

	store := NewMemoryStore()
	result, err := NewDirSource(dir, discardLogger()).Sync(context.Background(), store)
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	if result.Loaded != 2 {
		t.Errorf("loaded = %d, want 2", result.Loaded)
	}
	if result.Skipped != 1 {
		t.Errorf("skipped = %d, want 1 (the invalid pack)", result.Skipped)
	}

	infos, _ := store.List(context.Background())
	if len(infos) != 2 {
		t.Fatalf("store has %d packs, want 2", len(infos))
	}
	// Listings come back slug-ordered.
	if infos[0].Slug != "fire-safety" || infos[1].Slug != "residential-checks" {
		t.Errorf("listing order = %q, %q", infos[0].Slug, infos[1].Slug)
	}
}

func TestDirSource_MissingDir(t *testing.T) {
	store := NewMemoryStore()
	src := NewDirSource(filepath.Join(t.TempDir(), "nope"), discardLogger())

	if _, err := src.Sync(context.Background(), store); err == nil {
		t.Fatal("missing directory synced without error")
	}
}

func TestDirWatcher_ReloadsOnChange(t *testing.T) {
	dir := writePackDir(t, map[string]string{"residential.yaml": validPackYAML})
	store := NewMemoryStore()
	source := NewDirSource(dir, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watcher := NewDirWatcher(dir, source, store, 50*time.Millisecond, discardLogger())
	done := make(chan error, 1)
	go func() { done <- watcher.Watch(ctx) }()

	// Give the watcher time to register, then drop a new pack in.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "fire.yaml"), []byte(secondPackYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		if _, err := store.Get(ctx, "fire-safety"); err == nil {
			break
		}
		select {
		case <-deadline:
			t.Fatal("watcher never synced the new pack")
		case <-time.After(20 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch() error = %v", err)
	}
}

func TestSyncer_InitialSync(t *testing.T) {
	dir := writePackDir(t, map[string]string{"residential.yaml": validPackYAML})
	store := NewMemoryStore()

	syncer := NewSyncer(NewDirSource(dir, discardLogger()), store, "", discardLogger())
	if err := syncer.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer syncer.Stop()

	if _, err := store.Get(context.Background(), "residential-checks"); err != nil {
		t.Errorf("initial sync did not load the pack: %v", err)
	}
	if syncer.NextRun() != nil {
		t.Error("unscheduled syncer reports a next run")
	}
}

func TestSyncer_InvalidSchedule(t *testing.T) {
	dir := writePackDir(t, map[string]string{"residential.yaml": validPackYAML})
	syncer := NewSyncer(NewDirSource(dir, discardLogger()), NewMemoryStore(), "not-cron", discardLogger())

	if err := syncer.Start(context.Background()); err == nil {
		t.Fatal("invalid cron schedule accepted")
	}
}

func TestSyncer_Scheduled(t *testing.T) {
	dir := writePackDir(t, map[string]string{"residential.yaml": validPackYAML})
	store := NewMemoryStore()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	syncer := NewSyncer(NewDirSource(dir, discardLogger()), store, "* * * * *", discardLogger())
	if err := syncer.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer syncer.Stop()

	if syncer.NextRun() == nil {
		t.Error("scheduled syncer reports no next run")
	}
}
