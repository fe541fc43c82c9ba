package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
)

// GitSource loads rule packs from a git repository. The repository is
// cloned to a local path on first sync and pulled on each subsequent
// sync; the stored pack version context is the HEAD commit SHA.
type GitSource struct {
	config GitSourceConfig
	logger *slog.Logger

	mu   sync.Mutex
	repo *gogit.Repository
	dir  *DirSource
}

// GitSourceConfig configures a git pack source.
type GitSourceConfig struct {
	// URL is the remote repository URL.
	URL string

	// Branch is the branch to track. Default: main.
	Branch string

	// Path is the directory of pack files within the repository.
	// Default: the repository root.
	Path string

	// LocalPath is where the repository is cloned. Default: a
	// per-repository directory under the OS temp dir.
	LocalPath string

	// Token is an optional bearer token for private repositories.
	Token string
}

// NewGitSource creates a git pack source.
func NewGitSource(cfg GitSourceConfig, logger *slog.Logger) (*GitSource, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("repository URL cannot be empty")
	}
	if cfg.Branch == "" {
		cfg.Branch = "main"
	}
	if cfg.LocalPath == "" {
		cfg.LocalPath = filepath.Join(os.TempDir(), "buildcheck-packs")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &GitSource{
		config: cfg,
		logger: logger.With("component", "catalog.gitsource"),
	}, nil
}

// Sync clones or updates the repository and loads its pack files.
func (s *GitSource) Sync(ctx context.Context, store Store) (*SyncResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo == nil {
		if err := s.open(ctx); err != nil {
			return nil, err
		}
	} else if err := s.pull(ctx); err != nil {
		return nil, err
	}

	head, err := s.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD: %w", err)
	}

	if s.dir == nil {
		s.dir = NewDirSource(filepath.Join(s.config.LocalPath, s.config.Path), s.logger)
	}

	result, err := s.dir.Sync(ctx, store)
	if err != nil {
		return nil, err
	}
	result.Version = head.Hash().String()

	s.logger.Info("pack repository synchronized",
		"url", s.config.URL,
		"commit", result.Version,
		"loaded", result.Loaded,
		"skipped", result.Skipped,
	)
	return result, nil
}

// open clones the repository, or opens an existing local clone.
func (s *GitSource) open(ctx context.Context) error {
	if _, err := os.Stat(filepath.Join(s.config.LocalPath, ".git")); err == nil {
		repo, err := gogit.PlainOpen(s.config.LocalPath)
		if err != nil {
			return fmt.Errorf("failed to open existing repo: %w", err)
		}
		s.repo = repo
		return s.pull(ctx)
	}

	if err := os.MkdirAll(s.config.LocalPath, 0o755); err != nil {
		return fmt.Errorf("failed to create clone directory: %w", err)
	}

	repo, err := gogit.PlainCloneContext(ctx, s.config.LocalPath, false, &gogit.CloneOptions{
		URL:           s.config.URL,
		ReferenceName: plumbing.NewBranchReferenceName(s.config.Branch),
		SingleBranch:  true,
		Auth:          s.auth(),
	})
	if err != nil {
		return fmt.Errorf("failed to clone %q: %w", s.config.URL, err)
	}

	s.repo = repo
	return nil
}

// pull fetches the tracked branch. Already-up-to-date is not an error.
func (s *GitSource) pull(ctx context.Context) error {
	worktree, err := s.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	err = worktree.PullContext(ctx, &gogit.PullOptions{
		RemoteName: "origin",
		Auth:       s.auth(),
	})
	if err != nil && err != gogit.NoErrAlreadyUpToDate {
		return fmt.Errorf("failed to pull: %w", err)
	}
	return nil
}

func (s *GitSource) auth() *http.BasicAuth {
	if s.config.Token == "" {
		return nil
	}
	// go-git treats the token as the password with any non-empty user.
	return &http.BasicAuth{Username: "token", Password: s.config.Token}
}
