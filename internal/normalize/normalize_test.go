package normalize

import (
	"testing"

	"github.com/shopspring/decimal"

	"finsight/internal/core"
)

func TestExpenseVietnameseAliases(t *testing.T) {
	raw := map[string]any{
		"soTien":     "1200000",
		"currency":   "vnd",
		"ngayTao":    "2024-01-01",
		"danhMuc":    "Hosting",
		"phanBo":     "Có",
		"ngayTaiTuc": "01/02/2024", // DD/MM/YYYY
	}

	exp := Expense(raw)
	if !exp.Amount.Equal(decimal.NewFromInt(1_200_000)) {
		t.Fatalf("amount %s, want 1200000", exp.Amount)
	}
	if exp.Currency != core.VND {
		t.Fatalf("currency %s, want VND", exp.Currency)
	}
	if !exp.Date.Equal(core.NewDate(2024, 1, 1)) {
		t.Fatalf("date %s", exp.Date)
	}
	if exp.Category != "Hosting" {
		t.Fatalf("category %q", exp.Category)
	}
	if !exp.Allocatable {
		t.Fatalf("allocation flag not parsed")
	}
	if !exp.ValidityEnd.Equal(core.NewDate(2024, 2, 1)) {
		t.Fatalf("validity end %s, want 2024-02-01", exp.ValidityEnd)
	}
}

func TestExpenseEnglishAliases(t *testing.T) {
	raw := map[string]any{
		"id":                 "exp-1",
		"amount":             float64(250.50),
		"currency":           "USD",
		"date":               "2024-03-15",
		"category":           "Marketing",
		"periodicAllocation": false,
		"renewDate":          "2024-09-15",
	}

	exp := Expense(raw)
	if exp.ID != "exp-1" {
		t.Fatalf("id %q", exp.ID)
	}
	if !exp.Amount.Equal(decimal.NewFromFloat(250.50)) {
		t.Fatalf("amount %s", exp.Amount)
	}
	if exp.Allocatable {
		t.Fatalf("allocation flag must be false")
	}
	// Non-allocatable records carry no validity window.
	if !exp.ValidityEnd.IsZero() {
		t.Fatalf("validity end %s, want zero", exp.ValidityEnd)
	}
}

func TestExpenseMalformedValues(t *testing.T) {
	raw := map[string]any{
		"amount":   "abc",
		"currency": "EUR",
		"date":     "not-a-date",
		"category": "Misc",
		"phanBo":   "Không",
	}

	exp := Expense(raw)
	if !exp.Amount.IsZero() {
		t.Fatalf("invalid amount must become zero, got %s", exp.Amount)
	}
	if !exp.Date.IsZero() {
		t.Fatalf("invalid date must become zero, got %s", exp.Date)
	}
	if exp.Allocatable {
		t.Fatalf("Không must parse as false")
	}
	// Unknown currency is preserved verbatim; the aggregator ignores it.
	if exp.Currency != "EUR" {
		t.Fatalf("currency %q, want EUR", exp.Currency)
	}
}

func TestExpenseMissingFields(t *testing.T) {
	exp := Expense(map[string]any{})
	if !exp.Amount.IsZero() || !exp.Date.IsZero() || exp.Allocatable {
		t.Fatalf("empty payload must normalize to a zero record: %+v", exp)
	}
}

func TestRevenueAliases(t *testing.T) {
	cases := []struct {
		name string
		raw  map[string]any
	}{
		{"revenue field", map[string]any{
			"revenue":  "5000",
			"currency": "NGN",
			"date":     "2024-02-10",
			"category": "Licenses",
			"status":   "completed",
		}},
		{"amount and transactionDate aliases", map[string]any{
			"amount":          float64(5000),
			"currency":        "NGN",
			"transactionDate": "2024-02-10",
			"category":        "Licenses",
			"status":          "completed",
		}},
	}
	for _, tc := range cases {
		rev := Revenue(tc.raw)
		if !rev.Amount.Equal(decimal.NewFromInt(5000)) {
			t.Fatalf("%s: amount %s, want 5000", tc.name, rev.Amount)
		}
		if rev.Currency != core.NGN {
			t.Fatalf("%s: currency %s", tc.name, rev.Currency)
		}
		if !rev.Date.Equal(core.NewDate(2024, 2, 10)) {
			t.Fatalf("%s: date %s", tc.name, rev.Date)
		}
		if rev.Status != "completed" {
			t.Fatalf("%s: status %q", tc.name, rev.Status)
		}
	}
}

func TestAmountThousandsSeparators(t *testing.T) {
	raw := map[string]any{"amount": "1,200,000", "currency": "VND", "date": "2024-01-01", "category": "Ads"}
	exp := Expense(raw)
	if !exp.Amount.Equal(decimal.NewFromInt(1_200_000)) {
		t.Fatalf("amount %s, want 1200000", exp.Amount)
	}
}
