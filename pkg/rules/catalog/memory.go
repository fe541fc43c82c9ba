package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/WSG23/optimal-build-sub004/pkg/rules/ast"
)

// MemoryStore is an in-memory Store. It is the default for single-run
// tools (lint, validate) where persistence across restarts is not needed.
type MemoryStore struct {
	mu    sync.RWMutex
	packs map[string]*memoryEntry
}

type memoryEntry struct {
	pack      *ast.RulePack
	updatedAt time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{packs: make(map[string]*memoryEntry)}
}

// Put stores a pack, replacing any existing pack with the same slug.
func (s *MemoryStore) Put(_ context.Context, pack *ast.RulePack, _ []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.packs[pack.Slug] = &memoryEntry{pack: pack, updatedAt: time.Now()}
	return nil
}

// Get retrieves a pack by slug.
func (s *MemoryStore) Get(_ context.Context, slug string) (*ast.RulePack, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.packs[slug]
	if !ok {
		return nil, notFound(slug)
	}
	return entry.pack, nil
}

// List returns catalogue entries for all stored packs.
func (s *MemoryStore) List(_ context.Context) ([]PackInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]PackInfo, 0, len(s.packs))
	for _, entry := range s.packs {
		infos = append(infos, PackInfo{
			Slug:      entry.pack.Slug,
			Name:      entry.pack.Name,
			Version:   entry.pack.Version,
			Rules:     len(entry.pack.Rules),
			UpdatedAt: entry.updatedAt,
		})
	}
	sortInfos(infos)
	return infos, nil
}

// Delete removes a pack by slug.
func (s *MemoryStore) Delete(_ context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.packs[slug]; !ok {
		return notFound(slug)
	}
	delete(s.packs, slug)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }
