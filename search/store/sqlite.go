package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore is a SQLite implementation of Store.
//
// It archives search reports in a single-file database. Designed for:
//   - Local history of CLI runs with zero setup
//   - Single-process tools and benchmarks
//   - Tests (":memory:" or a temp file)
//
// SQLiteStore uses WAL mode so readers (astar history) never block a run
// that is writing its report.
//
// Schema:
//   - search_reports: one row per run, unique on run_id
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
	path   string
}

// NewSQLiteStore creates a new SQLite-backed store.
//
// The path parameter specifies the database file location:
//   - "./astar.db" - file in current directory
//   - "/tmp/astar.db" - absolute path
//   - ":memory:" - in-memory database (data lost on close)
//
// The store automatically creates the database file and schema, enables WAL
// mode and sets a busy timeout.
//
// Example:
//
//	archive, err := store.NewSQLiteStore("./astar.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer archive.Close()
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite connection: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite supports one writer at a time
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx := context.Background()
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	store := &SQLiteStore{db: db, path: path}
	if err := store.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) createTables(ctx context.Context) error {
	reportsTable := `
		CREATE TABLE IF NOT EXISTS search_reports (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			problem TEXT NOT NULL,
			initial_state TEXT NOT NULL,
			found INTEGER NOT NULL,
			path TEXT NOT NULL,
			moves TEXT NOT NULL,
			total_cost REAL NOT NULL,
			expanded INTEGER NOT NULL,
			max_open INTEGER NOT NULL,
			reopened INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		)
	`
	if _, err := s.db.ExecContext(ctx, reportsTable); err != nil {
		return fmt.Errorf("failed to create search_reports table: %w", err)
	}

	if _, err := s.db.ExecContext(ctx,
		"CREATE INDEX IF NOT EXISTS idx_reports_problem_created ON search_reports(problem, created_at)"); err != nil {
		return fmt.Errorf("failed to create idx_reports_problem_created: %w", err)
	}
	return nil
}

// SaveReport inserts report or replaces the existing row with its RunID.
func (s *SQLiteStore) SaveReport(ctx context.Context, report Report) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return errors.New("store is closed")
	}

	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}
	args, err := reportArgs(report)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO search_reports (` + reportColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			problem = excluded.problem,
			initial_state = excluded.initial_state,
			found = excluded.found,
			path = excluded.path,
			moves = excluded.moves,
			total_cost = excluded.total_cost,
			expanded = excluded.expanded,
			max_open = excluded.max_open,
			reopened = excluded.reopened,
			duration_ms = excluded.duration_ms
	`
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// LoadReport retrieves the report for runID.
func (s *SQLiteStore) LoadReport(ctx context.Context, runID string) (Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return Report{}, errors.New("store is closed")
	}

	row := s.db.QueryRowContext(ctx,
		"SELECT "+reportColumns+" FROM search_reports WHERE run_id = ?", runID)
	return scanReport(row)
}

// ListReports returns matching reports, newest first.
func (s *SQLiteStore) ListReports(ctx context.Context, filter Filter) ([]Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, errors.New("store is closed")
	}

	return listReports(ctx, s.db, filter)
}

// Path returns the database file location the store was opened with.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the database connection. Subsequent calls are no-ops.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
