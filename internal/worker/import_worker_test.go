package worker

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"

	"finsight/internal/amqp"
	"finsight/internal/core"
	"finsight/internal/storage"
)

func TestHandleImportMessageExpense(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewMemoryRepository()
	w := NewImportWorker(repo)

	payload := json.RawMessage(`{
		"soTien": "1200000",
		"currency": "VND",
		"ngayTao": "2024-01-01",
		"danhMuc": "Hosting",
		"phanBo": "Có",
		"ngayTaiTuc": "2024-02-01"
	}`)
	msg := amqp.NewRecordImportMessage(amqp.KindExpense, payload)

	if err := w.HandleImportMessage(ctx, msg); err != nil {
		t.Fatalf("handle: %v", err)
	}

	expenses, _ := repo.ListExpenses(ctx)
	if len(expenses) != 1 {
		t.Fatalf("expenses %d, want 1", len(expenses))
	}
	exp := expenses[0]
	if !exp.Amount.Equal(decimal.NewFromInt(1_200_000)) || exp.Currency != core.VND {
		t.Fatalf("imported record %+v", exp)
	}
	if !exp.Allocatable || !exp.ValidityEnd.Equal(core.NewDate(2024, 2, 1)) {
		t.Fatalf("allocation window lost: %+v", exp)
	}
}

func TestHandleImportMessageRevenue(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewMemoryRepository()
	w := NewImportWorker(repo)

	payload := json.RawMessage(`{
		"revenue": 5000,
		"currency": "NGN",
		"transactionDate": "2024-02-10",
		"category": "Licenses",
		"status": "completed"
	}`)
	if err := w.HandleImportMessage(ctx, amqp.NewRecordImportMessage(amqp.KindRevenue, payload)); err != nil {
		t.Fatalf("handle: %v", err)
	}

	revenues, _ := repo.ListRevenues(ctx)
	if len(revenues) != 1 || revenues[0].Status != "completed" {
		t.Fatalf("revenues %+v", revenues)
	}
}

func TestHandleImportMessageBadPayloads(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewMemoryRepository()
	w := NewImportWorker(repo)

	cases := []struct {
		name string
		msg  *amqp.RecordImportMessage
	}{
		{"not json", amqp.NewRecordImportMessage(amqp.KindExpense, json.RawMessage(`{broken`))},
		{"unknown kind", amqp.NewRecordImportMessage("budget", json.RawMessage(`{}`))},
		{"invalid record", amqp.NewRecordImportMessage(amqp.KindExpense, json.RawMessage(`{"amount":"abc"}`))},
	}
	for _, tc := range cases {
		// Poison messages are dropped, never requeued.
		if err := w.HandleImportMessage(ctx, tc.msg); err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
	}

	expenses, _ := repo.ListExpenses(ctx)
	revenues, _ := repo.ListRevenues(ctx)
	if len(expenses) != 0 || len(revenues) != 0 {
		t.Fatalf("bad payloads were stored: %d expenses, %d revenues", len(expenses), len(revenues))
	}
}
