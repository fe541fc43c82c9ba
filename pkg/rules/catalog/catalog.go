// Package catalog stores and serves versioned rule packs.
//
// A Store is the system of record for parsed packs; Sources (directories,
// git repositories) load packs into a store, and a Syncer keeps a store
// current on a schedule.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/WSG23/optimal-build-sub004/pkg/rules/ast"
)

// ErrPackNotFound is returned when a slug is not in the store.
var ErrPackNotFound = errors.New("rule pack not found")

// PackInfo is the catalogue listing entry for a stored pack.
type PackInfo struct {
	Slug      string    `json:"slug"`
	Name      string    `json:"name,omitempty"`
	Version   string    `json:"version"`
	Rules     int       `json:"rules"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store is the system of record for rule packs, keyed by slug.
// Put replaces any existing pack with the same slug.
type Store interface {
	Put(ctx context.Context, pack *ast.RulePack, raw []byte) error
	Get(ctx context.Context, slug string) (*ast.RulePack, error)
	List(ctx context.Context) ([]PackInfo, error)
	Delete(ctx context.Context, slug string) error
	Close() error
}

// SyncResult summarizes one source synchronization.
type SyncResult struct {
	// Loaded is the number of packs stored.
	Loaded int

	// Skipped is the number of files rejected by parsing or validation.
	Skipped int

	// Version identifies the source revision, when the source has one
	// (e.g. a git commit SHA).
	Version string
}

// Source loads rule packs from an external location into a store.
// Implementations must be safe for repeated Sync calls.
type Source interface {
	Sync(ctx context.Context, store Store) (*SyncResult, error)
}

func notFound(slug string) error {
	return fmt.Errorf("%w: %q", ErrPackNotFound, slug)
}

// sortInfos orders listings by slug so callers see a stable catalogue.
func sortInfos(infos []PackInfo) {
	sort.Slice(infos, func(i, j int) bool { return infos[i].Slug < infos[j].Slug })
}
