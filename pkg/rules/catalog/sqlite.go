package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/WSG23/optimal-build-sub004/pkg/rules/ast"
	"github.com/WSG23/optimal-build-sub004/pkg/rules/parser"
)

// SQLiteStore persists rule packs in a SQLite database. The raw YAML is
// the stored form; packs are re-parsed on read so the database never
// holds a serialization of the AST that could drift from the parser.
//
// The store uses a write-ahead log for concurrent readers and keeps its
// statements prepared across calls.
type SQLiteStore struct {
	db        *sql.DB
	parser    *parser.Parser
	mu        sync.RWMutex
	closeOnce sync.Once

	putStmt    *sql.Stmt
	getStmt    *sql.Stmt
	listStmt   *sql.Stmt
	deleteStmt *sql.Stmt
}

// SQLiteStoreConfig configures the SQLite store.
type SQLiteStoreConfig struct {
	// Path is the database file path.
	Path string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds.
	BusyTimeout time.Duration
}

// NewSQLiteStore opens (or creates) a pack store at the given path with
// default settings.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	return NewSQLiteStoreWithConfig(SQLiteStoreConfig{Path: path})
}

// NewSQLiteStoreWithConfig opens a pack store with custom configuration.
func NewSQLiteStoreWithConfig(cfg SQLiteStoreConfig) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		cfg.Path, int(cfg.BusyTimeout.Milliseconds()))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	store := &SQLiteStore{db: db, parser: parser.NewParser()}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err := store.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS rule_packs (
		slug        TEXT PRIMARY KEY,
		name        TEXT NOT NULL DEFAULT '',
		version     TEXT NOT NULL,
		rule_count  INTEGER NOT NULL,
		source_file TEXT NOT NULL DEFAULT '',
		raw         BLOB NOT NULL,
		updated_at  INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_rule_packs_updated ON rule_packs(updated_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.putStmt, err = s.db.Prepare(`
		INSERT INTO rule_packs (slug, name, version, rule_count, source_file, raw, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (slug) DO UPDATE SET
			name = excluded.name,
			version = excluded.version,
			rule_count = excluded.rule_count,
			source_file = excluded.source_file,
			raw = excluded.raw,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare put statement: %w", err)
	}

	s.getStmt, err = s.db.Prepare(`
		SELECT source_file, raw FROM rule_packs WHERE slug = ?
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare get statement: %w", err)
	}

	s.listStmt, err = s.db.Prepare(`
		SELECT slug, name, version, rule_count, updated_at
		FROM rule_packs ORDER BY slug
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare list statement: %w", err)
	}

	s.deleteStmt, err = s.db.Prepare(`
		DELETE FROM rule_packs WHERE slug = ?
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare delete statement: %w", err)
	}

	return nil
}

// Put stores a pack and its raw YAML, replacing any existing pack with
// the same slug.
func (s *SQLiteStore) Put(ctx context.Context, pack *ast.RulePack, raw []byte) error {
	if pack == nil {
		return fmt.Errorf("pack cannot be nil")
	}
	if pack.Slug == "" {
		return fmt.Errorf("pack slug cannot be empty")
	}
	if len(raw) == 0 {
		return fmt.Errorf("raw pack source cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.putStmt.ExecContext(ctx,
		pack.Slug,
		pack.Name,
		pack.Version,
		len(pack.Rules),
		pack.SourceFile,
		raw,
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to store pack %q: %w", pack.Slug, err)
	}
	return nil
}

// Get retrieves a pack by slug, re-parsing its stored YAML.
func (s *SQLiteStore) Get(ctx context.Context, slug string) (*ast.RulePack, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		sourceFile string
		raw        []byte
	)
	err := s.getStmt.QueryRowContext(ctx, slug).Scan(&sourceFile, &raw)
	if err == sql.ErrNoRows {
		return nil, notFound(slug)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load pack %q: %w", slug, err)
	}

	pack, err := s.parser.ParseBytes(raw, sourceFile)
	if err != nil {
		return nil, fmt.Errorf("stored pack %q no longer parses: %w", slug, err)
	}
	return pack, nil
}

// List returns catalogue entries for all stored packs, ordered by slug.
func (s *SQLiteStore) List(ctx context.Context) ([]PackInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.listStmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list packs: %w", err)
	}
	defer rows.Close()

	var infos []PackInfo
	for rows.Next() {
		var (
			info      PackInfo
			updatedAt int64
		)
		if err := rows.Scan(&info.Slug, &info.Name, &info.Version, &info.Rules, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		info.UpdatedAt = time.Unix(updatedAt, 0)
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return infos, nil
}

// Delete removes a pack by slug.
func (s *SQLiteStore) Delete(ctx context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.deleteStmt.ExecContext(ctx, slug)
	if err != nil {
		return fmt.Errorf("failed to delete pack %q: %w", slug, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return notFound(slug)
	}
	return nil
}

// Close releases prepared statements and the database handle.
// Close is idempotent and safe to call multiple times.
func (s *SQLiteStore) Close() error {
	var closeErr error

	s.closeOnce.Do(func() {
		for _, stmt := range []*sql.Stmt{s.putStmt, s.getStmt, s.listStmt, s.deleteStmt} {
			if stmt != nil {
				stmt.Close()
			}
		}
		if s.db != nil {
			_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
			closeErr = s.db.Close()
		}
	})

	return closeErr
}
