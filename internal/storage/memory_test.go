package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"finsight/internal/core"
)

func testExpense(amount int64) core.ExpenseRecord {
	return core.ExpenseRecord{
		MonetaryRecord: core.MonetaryRecord{
			Amount:   decimal.NewFromInt(amount),
			Currency: core.VND,
			Date:     core.NewDate(2024, 1, 1),
			Category: "Hosting",
		},
	}
}

func TestMemoryRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	id, err := repo.InsertExpense(ctx, testExpense(100))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id == "" {
		t.Fatalf("empty id assigned")
	}

	list, err := repo.ListExpenses(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != id {
		t.Fatalf("unexpected list %+v", list)
	}
	if !list[0].Amount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("amount %s, want 100", list[0].Amount)
	}
}

func TestMemoryRepositorySoftDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	id, _ := repo.InsertExpense(ctx, testExpense(100))
	if err := repo.DeleteExpense(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}

	list, _ := repo.ListExpenses(ctx)
	if len(list) != 0 {
		t.Fatalf("deleted record still listed")
	}

	if err := repo.DeleteExpense(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err=%v, want ErrNotFound", err)
	}
	if err := repo.DeleteExpense(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing delete err=%v, want ErrNotFound", err)
	}
}

func TestMemoryRepositorySnapshotVersion(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	v0, _ := repo.SnapshotVersion(ctx)
	id, _ := repo.InsertExpense(ctx, testExpense(100))
	v1, _ := repo.SnapshotVersion(ctx)
	if v1 <= v0 {
		t.Fatalf("version did not increase on insert: %d -> %d", v0, v1)
	}

	_ = repo.DeleteExpense(ctx, id)
	v2, _ := repo.SnapshotVersion(ctx)
	if v2 <= v1 {
		t.Fatalf("version did not increase on delete: %d -> %d", v1, v2)
	}

	// Reads leave the version untouched.
	_, _ = repo.ListExpenses(ctx)
	v3, _ := repo.SnapshotVersion(ctx)
	if v3 != v2 {
		t.Fatalf("version changed on read: %d -> %d", v2, v3)
	}
}
