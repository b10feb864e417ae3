package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemStore is an in-memory implementation of Store.
//
// Designed for:
//   - Testing and development
//   - One-shot CLI runs that only want the report printed
//
// MemStore is thread-safe and supports concurrent access. Data is lost when
// the process terminates.
type MemStore struct {
	mu      sync.RWMutex
	reports map[string]Report
	order   map[string]uint64 // runID -> save sequence, for stable ordering
	seq     uint64
	now     func() time.Time
}

// NewMemStore creates a new in-memory store.
//
// Example:
//
//	archive := store.NewMemStore()
//	_ = archive.SaveReport(ctx, report)
func NewMemStore() *MemStore {
	return &MemStore{
		reports: make(map[string]Report),
		order:   make(map[string]uint64),
		now:     time.Now,
	}
}

// SaveReport stores a copy of report, replacing any earlier report with the
// same RunID but keeping its CreatedAt.
func (m *MemStore) SaveReport(_ context.Context, report Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.reports[report.RunID]; ok {
		report.CreatedAt = existing.CreatedAt
	} else if report.CreatedAt.IsZero() {
		report.CreatedAt = m.now()
	}
	report.Path = append([]string(nil), report.Path...)
	report.Moves = append([]string(nil), report.Moves...)

	if _, exists := m.order[report.RunID]; !exists {
		m.seq++
		m.order[report.RunID] = m.seq
	}
	m.reports[report.RunID] = report
	return nil
}

// LoadReport retrieves the report for runID.
func (m *MemStore) LoadReport(_ context.Context, runID string) (Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	report, exists := m.reports[runID]
	if !exists {
		return Report{}, ErrNotFound
	}
	return report, nil
}

// ListReports returns matching reports, newest first. Reports with equal
// CreatedAt are ordered by most recent first save.
func (m *MemStore) ListReports(_ context.Context, filter Filter) ([]Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Report, 0, len(m.reports))
	for _, report := range m.reports {
		if filter.Problem != "" && report.Problem != filter.Problem {
			continue
		}
		result = append(result, report)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return m.order[result[i].RunID] > m.order[result[j].RunID]
	})

	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

// Close is a no-op for MemStore.
func (m *MemStore) Close() error {
	return nil
}
