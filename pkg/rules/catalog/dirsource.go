package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/WSG23/optimal-build-sub004/pkg/rules/parser"
	"github.com/WSG23/optimal-build-sub004/pkg/rules/validator"
)

// DirSource loads rule packs from YAML files in a directory. Files that
// fail parsing or validation are logged and skipped so one broken pack
// does not block the rest of the catalogue.
type DirSource struct {
	dir       string
	parser    *parser.Parser
	validator *validator.Validator
	logger    *slog.Logger
}

// NewDirSource creates a source reading packs from the given directory.
func NewDirSource(dir string, logger *slog.Logger) *DirSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &DirSource{
		dir:       dir,
		parser:    parser.NewParser(),
		validator: validator.NewValidator(),
		logger:    logger.With("component", "catalog.dirsource"),
	}
}

// Sync parses every pack file in the directory and stores the valid ones.
func (s *DirSource) Sync(ctx context.Context, store Store) (*SyncResult, error) {
	files, err := listPackFiles(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list pack files: %w", err)
	}

	result := &SyncResult{}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := s.loadFile(ctx, store, path); err != nil {
			s.logger.Warn("skipping rule pack",
				"file", path,
				"error", err,
			)
			result.Skipped++
			continue
		}
		result.Loaded++
	}

	s.logger.Info("pack directory synchronized",
		"dir", s.dir,
		"loaded", result.Loaded,
		"skipped", result.Skipped,
	)
	return result, nil
}

// loadFile parses, validates and stores a single pack file.
func (s *DirSource) loadFile(ctx context.Context, store Store, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	pack, err := s.parser.ParseBytes(raw, path)
	if err != nil {
		return err
	}
	if err := s.validator.Validate(pack); err != nil {
		return err
	}

	return store.Put(ctx, pack, raw)
}

// listPackFiles returns the directory's YAML files in lexical order,
// skipping hidden files and subdirectories.
func listPackFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}
