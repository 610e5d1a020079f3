package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/simple-utils/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/simple-utils/internal/core/domain"
	"github.com/custodia-labs/simple-utils/internal/core/ports/driven"
)

// dbFileName is the database file inside the data directory.
const dbFileName = "history.db"

// Store is a SQLite-based storage that provides access to the
// store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.simpleutils/data/history.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".simpleutils", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFileName)

	// WAL lets the HTTP server read history while an explanation is written.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ExplanationStore returns an ExplanationStore interface backed by this store.
func (s *Store) ExplanationStore() driven.ExplanationStore {
	return &explanationStore{store: s}
}

// migrate runs all pending migrations, each in its own transaction.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_explanations.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if err := s.applyMigration(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) applyMigration(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// ==================== Explanation Store ====================

// explanationStore implements driven.ExplanationStore.
type explanationStore struct {
	store *Store
}

var _ driven.ExplanationStore = (*explanationStore)(nil)

// Save stores or replaces an explanation.
func (e *explanationStore) Save(ctx context.Context, exp domain.Explanation) error {
	if exp.ID == "" {
		return fmt.Errorf("%w: explanation ID is required", domain.ErrInvalidInput)
	}

	_, err := e.store.db.ExecContext(ctx, `
		INSERT INTO explanations
			(id, language, code, simple_explanation, what_it_does, real_world_analogy, model, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			language = excluded.language,
			code = excluded.code,
			simple_explanation = excluded.simple_explanation,
			what_it_does = excluded.what_it_does,
			real_world_analogy = excluded.real_world_analogy,
			model = excluded.model,
			created_at = excluded.created_at
	`,
		exp.ID,
		string(exp.Language),
		exp.Code,
		exp.SimpleExplanation,
		exp.WhatItDoes,
		exp.RealWorldAnalogy,
		exp.Model,
		exp.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("saving explanation: %w", err)
	}
	return nil
}

// Get retrieves an explanation by ID.
func (e *explanationStore) Get(ctx context.Context, id string) (*domain.Explanation, error) {
	row := e.store.db.QueryRowContext(ctx, `
		SELECT id, language, code, simple_explanation, what_it_does, real_world_analogy, model, created_at
		FROM explanations WHERE id = ?
	`, id)

	exp, err := scanExplanation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting explanation: %w", err)
	}
	return exp, nil
}

// List returns up to limit explanations, newest first.
func (e *explanationStore) List(ctx context.Context, limit int) ([]domain.Explanation, error) {
	// SQLite treats a negative LIMIT as no limit.
	if limit <= 0 {
		limit = -1
	}

	rows, err := e.store.db.QueryContext(ctx, `
		SELECT id, language, code, simple_explanation, what_it_does, real_world_analogy, model, created_at
		FROM explanations
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing explanations: %w", err)
	}
	defer rows.Close()

	var result []domain.Explanation
	for rows.Next() {
		exp, err := scanExplanation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning explanation: %w", err)
		}
		result = append(result, *exp)
	}
	return result, rows.Err()
}

// Clear deletes all explanations.
func (e *explanationStore) Clear(ctx context.Context) error {
	if _, err := e.store.db.ExecContext(ctx, "DELETE FROM explanations"); err != nil {
		return fmt.Errorf("clearing explanations: %w", err)
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanExplanation(row scanner) (*domain.Explanation, error) {
	var (
		exp       domain.Explanation
		language  string
		createdAt int64
	)
	err := row.Scan(
		&exp.ID,
		&language,
		&exp.Code,
		&exp.SimpleExplanation,
		&exp.WhatItDoes,
		&exp.RealWorldAnalogy,
		&exp.Model,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	exp.Language = domain.Language(language)
	exp.CreatedAt = time.Unix(0, createdAt).UTC()
	return &exp, nil
}
