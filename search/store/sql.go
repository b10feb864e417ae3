package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// reportColumns is the column list shared by the SQL stores, in scan order.
const reportColumns = `run_id, problem, initial_state, found, path, moves,
	total_cost, expanded, max_open, reopened, duration_ms, created_at`

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

// reportArgs flattens a report into the column order of reportColumns.
func reportArgs(report Report) ([]interface{}, error) {
	path, err := json.Marshal(nonNil(report.Path))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal path: %w", err)
	}
	moves, err := json.Marshal(nonNil(report.Moves))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal moves: %w", err)
	}

	return []interface{}{
		report.RunID,
		report.Problem,
		report.Initial,
		report.Found,
		string(path),
		string(moves),
		report.TotalCost,
		report.Expanded,
		report.MaxOpen,
		report.Reopened,
		report.DurationMS,
		report.CreatedAt.UnixNano(),
	}, nil
}

func scanReport(row scanner) (Report, error) {
	var (
		report    Report
		path      string
		moves     string
		createdAt int64
	)
	err := row.Scan(
		&report.RunID,
		&report.Problem,
		&report.Initial,
		&report.Found,
		&path,
		&moves,
		&report.TotalCost,
		&report.Expanded,
		&report.MaxOpen,
		&report.Reopened,
		&report.DurationMS,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Report{}, ErrNotFound
	}
	if err != nil {
		return Report{}, fmt.Errorf("failed to scan report: %w", err)
	}

	if err := json.Unmarshal([]byte(path), &report.Path); err != nil {
		return Report{}, fmt.Errorf("failed to unmarshal path: %w", err)
	}
	if err := json.Unmarshal([]byte(moves), &report.Moves); err != nil {
		return Report{}, fmt.Errorf("failed to unmarshal moves: %w", err)
	}
	report.CreatedAt = time.Unix(0, createdAt)
	return report, nil
}

// listReports runs a ListReports query against either SQL dialect; both
// accept ? placeholders.
func listReports(ctx context.Context, db *sql.DB, filter Filter) ([]Report, error) {
	query := "SELECT " + reportColumns + " FROM search_reports"
	var args []interface{}
	if filter.Problem != "" {
		query += " WHERE problem = ?"
		args = append(args, filter.Problem)
	}
	query += " ORDER BY created_at DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	reports := make([]Report, 0)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w", err)
	}
	return reports, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
