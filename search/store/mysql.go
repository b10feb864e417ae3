package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLStore is a MySQL/MariaDB implementation of Store.
//
// Designed for:
//   - A shared archive written by several machines running benchmarks
//   - Long-lived history that survives process restarts
//
// MySQLStore uses connection pooling and an upsert keyed on run_id.
//
// Schema:
//   - search_reports: one row per run, unique on run_id
type MySQLStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewMySQLStore creates a new MySQL-backed store.
//
// The DSN (Data Source Name) format is:
//
//	[username[:password]@][protocol[(address)]]/dbname[?param1=value1&...&paramN=valueN]
//
// Example DSNs:
//
//	user:password@tcp(localhost:3306)/astar
//	user:password@/astar (uses localhost:3306)
//
// Security Warning:
//
//	NEVER hardcode credentials in your source code. Pass the DSN through
//	the environment or a config file that is not checked in.
//
// The store pings the server and creates the schema if needed.
func NewMySQLStore(dsn string) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	store := &MySQLStore{db: db}
	if err := store.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return store, nil
}

func (m *MySQLStore) createTables(ctx context.Context) error {
	reportsTable := `
		CREATE TABLE IF NOT EXISTS search_reports (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			run_id VARCHAR(255) NOT NULL,
			problem VARCHAR(255) NOT NULL,
			initial_state TEXT NOT NULL,
			found BOOLEAN NOT NULL,
			path JSON NOT NULL,
			moves JSON NOT NULL,
			total_cost DOUBLE NOT NULL,
			expanded BIGINT NOT NULL,
			max_open BIGINT NOT NULL,
			reopened BIGINT NOT NULL,
			duration_ms BIGINT NOT NULL,
			created_at BIGINT NOT NULL,
			UNIQUE KEY unique_run_id (run_id),
			INDEX idx_problem_created (problem, created_at)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci
	`
	if _, err := m.db.ExecContext(ctx, reportsTable); err != nil {
		return fmt.Errorf("failed to create search_reports table: %w", err)
	}
	return nil
}

// SaveReport inserts report or replaces the existing row with its RunID.
func (m *MySQLStore) SaveReport(ctx context.Context, report Report) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
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
		ON DUPLICATE KEY UPDATE
			problem = VALUES(problem),
			initial_state = VALUES(initial_state),
			found = VALUES(found),
			path = VALUES(path),
			moves = VALUES(moves),
			total_cost = VALUES(total_cost),
			expanded = VALUES(expanded),
			max_open = VALUES(max_open),
			reopened = VALUES(reopened),
			duration_ms = VALUES(duration_ms)
	`
	if _, err := m.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// LoadReport retrieves the report for runID.
func (m *MySQLStore) LoadReport(ctx context.Context, runID string) (Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return Report{}, errors.New("store is closed")
	}

	row := m.db.QueryRowContext(ctx,
		"SELECT "+reportColumns+" FROM search_reports WHERE run_id = ?", runID)
	return scanReport(row)
}

// ListReports returns matching reports, newest first.
func (m *MySQLStore) ListReports(ctx context.Context, filter Filter) ([]Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, errors.New("store is closed")
	}

	return listReports(ctx, m.db, filter)
}

// Ping verifies the database connection is alive.
func (m *MySQLStore) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return errors.New("store is closed")
	}
	return m.db.PingContext(ctx)
}

// Close closes the connection pool. Subsequent calls are no-ops.
func (m *MySQLStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	return m.db.Close()
}
