package history

import (
	"context"
	"database/sql"
	stderrors "errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/apache/tsfile-website/internal/foundation/errors"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (creating if needed) the ledger at dbPath.
// Use ":memory:" for an in-memory database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, storeError("create history directory", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, storeError("open sqlite database", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, storeError("initialize schema", err)
	}
	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS deploys (
		id TEXT PRIMARY KEY,
		repo TEXT NOT NULL,
		branch TEXT NOT NULL,
		commit_hash TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		attempts INTEGER NOT NULL DEFAULT 1,
		files INTEGER NOT NULL DEFAULT 0,
		started_at INTEGER NOT NULL,
		finished_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_deploys_started ON deploys(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record inserts r, assigning an id when empty.
func (s *SQLiteStore) Record(ctx context.Context, r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == "" {
		r.ID = NewID()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO deploys (id, repo, branch, commit_hash, status, error, attempts, files, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Repo, r.Branch, r.Commit, string(r.Status), r.Error, r.Attempts, r.Files,
		r.StartedAt.UnixMilli(), r.FinishedAt.UnixMilli(),
	)
	if err != nil {
		return storeError("insert deploy", err)
	}
	return nil
}

const selectColumns = "SELECT id, repo, branch, commit_hash, status, error, attempts, files, started_at, finished_at FROM deploys"

// List returns the most recent records first.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, selectColumns+" ORDER BY started_at DESC, rowid DESC LIMIT ?", limit)
	if err != nil {
		return nil, storeError("query deploys", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("iterate rows", err)
	}
	return out, nil
}

// Get returns the record with the given id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, err := scanRecord(s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id))
	if stderrors.Is(err, sql.ErrNoRows) {
		return Record{}, errors.NewError(errors.CategoryNotFound, "deploy not found").WithContext("id", id).Build()
	}
	return r, err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var r Record
	var status string
	var started, finished int64
	err := row.Scan(&r.ID, &r.Repo, &r.Branch, &r.Commit, &status, &r.Error, &r.Attempts, &r.Files, &started, &finished)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return Record{}, err
		}
		return Record{}, storeError("scan deploy", err)
	}
	r.Status = Status(status)
	r.StartedAt = time.UnixMilli(started)
	r.FinishedAt = time.UnixMilli(finished)
	return r, nil
}

func storeError(msg string, err error) error {
	return errors.NewError(errors.CategoryStore, msg).WithCause(err).Build()
}
