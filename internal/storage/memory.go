package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"finsight/internal/core"
)

// MemoryRepository is an in-process Repository used by tests and by the
// DATA_BACKEND=memory mode. It mirrors the SQLite repository's semantics,
// including soft deletes and the snapshot version counter.
type MemoryRepository struct {
	mu       sync.Mutex
	expenses []memoryRecord[core.ExpenseRecord]
	revenues []memoryRecord[core.RevenueRecord]
	version  int64
}

type memoryRecord[T any] struct {
	record  T
	deleted bool
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (m *MemoryRepository) InsertExpense(_ context.Context, e core.ExpenseRecord) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	m.expenses = append(m.expenses, memoryRecord[core.ExpenseRecord]{record: e})
	m.version++
	return e.ID, nil
}

func (m *MemoryRepository) InsertRevenue(_ context.Context, r core.RevenueRecord) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	m.revenues = append(m.revenues, memoryRecord[core.RevenueRecord]{record: r})
	m.version++
	return r.ID, nil
}

func (m *MemoryRepository) DeleteExpense(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.expenses {
		if m.expenses[i].record.ID == id && !m.expenses[i].deleted {
			m.expenses[i].deleted = true
			m.version++
			return nil
		}
	}
	return fmt.Errorf("expense %s: %w", id, ErrNotFound)
}

func (m *MemoryRepository) DeleteRevenue(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.revenues {
		if m.revenues[i].record.ID == id && !m.revenues[i].deleted {
			m.revenues[i].deleted = true
			m.version++
			return nil
		}
	}
	return fmt.Errorf("revenue %s: %w", id, ErrNotFound)
}

func (m *MemoryRepository) ListExpenses(_ context.Context) ([]core.ExpenseRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]core.ExpenseRecord, 0, len(m.expenses))
	for _, rec := range m.expenses {
		if !rec.deleted {
			out = append(out, rec.record)
		}
	}
	return out, nil
}

func (m *MemoryRepository) ListRevenues(_ context.Context) ([]core.RevenueRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]core.RevenueRecord, 0, len(m.revenues))
	for _, rec := range m.revenues {
		if !rec.deleted {
			out = append(out, rec.record)
		}
	}
	return out, nil
}

func (m *MemoryRepository) SnapshotVersion(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.version, nil
}

func (m *MemoryRepository) Close() error { return nil }
