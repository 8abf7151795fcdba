// Package storage persists the raw record set the reporting engine is
// computed from. Reads return the full (non-deleted) snapshot; all date
// filtering happens in the engine, because an allocatable expense outside
// a period can still contribute to it through its validity window.
package storage

import (
	"context"
	"errors"

	"finsight/internal/core"
)

var ErrNotFound = errors.New("record not found")

// Repository is the record store consumed by the report service and the
// import worker. SnapshotVersion increases on every write and keys the
// report cache.
type Repository interface {
	InsertExpense(ctx context.Context, e core.ExpenseRecord) (string, error)
	InsertRevenue(ctx context.Context, r core.RevenueRecord) (string, error)
	DeleteExpense(ctx context.Context, id string) error
	DeleteRevenue(ctx context.Context, id string) error
	ListExpenses(ctx context.Context) ([]core.ExpenseRecord, error)
	ListRevenues(ctx context.Context) ([]core.RevenueRecord, error)
	SnapshotVersion(ctx context.Context) (int64, error)
	Close() error
}
