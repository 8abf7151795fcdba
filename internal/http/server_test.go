package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finsight/internal/cache"
	"finsight/internal/core"
	"finsight/internal/engine"
	"finsight/internal/services"
	"finsight/internal/storage"

	"github.com/shopspring/decimal"
)

func newTestServer(t *testing.T) (*Server, *storage.MemoryRepository) {
	t.Helper()
	repo := storage.NewMemoryRepository()
	reports := services.NewReportService(repo, cache.New[any](16, time.Minute), engine.DefaultThresholds())
	return NewServer(":0", reports, repo), repo
}

func doRequest(t *testing.T, srv *Server, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
}

func TestCreateAndListExpense(t *testing.T) {
	srv, _ := newTestServer(t)

	body := []byte(`{
		"soTien": "1200000",
		"currency": "VND",
		"ngayTao": "2024-01-01",
		"danhMuc": "Hosting",
		"phanBo": "Có",
		"ngayTaiTuc": "2024-02-01"
	}`)
	rec := doRequest(t, srv, http.MethodPost, "/api/expenses", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body)
	}

	var created core.ExpenseRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.ID == "" || !created.Allocatable || created.Currency != core.VND {
		t.Fatalf("created %+v", created)
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/expenses", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status %d", rec.Code)
	}
	var listed struct {
		Expenses []core.ExpenseRecord `json:"expenses"`
		Count    int                  `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if listed.Count != 1 || len(listed.Expenses) != 1 {
		t.Fatalf("listed %+v", listed)
	}
	if !listed.Expenses[0].Amount.Equal(decimal.NewFromInt(1_200_000)) {
		t.Fatalf("amount %s", listed.Expenses[0].Amount)
	}
}

func TestCreateExpenseInvalid(t *testing.T) {
	srv, _ := newTestServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"not json", `{broken`},
		{"missing category", `{"amount": 100, "currency": "USD", "date": "2024-01-01"}`},
		{"unknown currency", `{"amount": 100, "currency": "EUR", "date": "2024-01-01", "category": "Ads"}`},
	}
	for _, tc := range cases {
		rec := doRequest(t, srv, http.MethodPost, "/api/expenses", []byte(tc.body))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status %d, want 400", tc.name, rec.Code)
		}
	}
}

func TestDeleteExpense(t *testing.T) {
	srv, repo := newTestServer(t)

	id, err := repo.InsertExpense(context.Background(), core.ExpenseRecord{
		MonetaryRecord: core.MonetaryRecord{
			Amount:   decimal.NewFromInt(100),
			Currency: core.USD,
			Date:     core.NewDate(2024, 1, 5),
			Category: "Ads",
		},
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	rec := doRequest(t, srv, http.MethodDelete, "/api/expenses/"+id, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status %d", rec.Code)
	}

	rec = doRequest(t, srv, http.MethodDelete, "/api/expenses/"+id, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status %d, want 404", rec.Code)
	}
}

func TestCreateRevenueEnglishAliases(t *testing.T) {
	srv, _ := newTestServer(t)

	body := []byte(`{
		"revenue": 5000,
		"currency": "NGN",
		"transactionDate": "2024-02-10",
		"category": "Licenses",
		"status": "completed"
	}`)
	rec := doRequest(t, srv, http.MethodPost, "/api/revenues", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body)
	}

	var created core.RevenueRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Status != "completed" || created.Currency != core.NGN {
		t.Fatalf("created %+v", created)
	}
}

func TestSummaryEndpoint(t *testing.T) {
	srv, repo := newTestServer(t)
	ctx := context.Background()

	if _, err := repo.InsertRevenue(ctx, core.RevenueRecord{
		MonetaryRecord: core.MonetaryRecord{
			Amount:   decimal.NewFromInt(2000),
			Currency: core.USD,
			Date:     core.NewDate(2024, 2, 10),
			Category: "Sales",
		},
	}); err != nil {
		t.Fatalf("insert revenue: %v", err)
	}
	if _, err := repo.InsertExpense(ctx, core.ExpenseRecord{
		MonetaryRecord: core.MonetaryRecord{
			Amount:   decimal.NewFromInt(500),
			Currency: core.USD,
			Date:     core.NewDate(2024, 2, 15),
			Category: "Hosting",
		},
	}); err != nil {
		t.Fatalf("insert expense: %v", err)
	}

	rec := doRequest(t, srv, http.MethodGet, "/api/reports/summary?from=2024-02-01&to=2024-02-29", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body)
	}

	var report services.SummaryReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !report.Revenue[core.USD].Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("revenue %s", report.Revenue[core.USD])
	}
	if !report.Analysis.ByCurrency[core.USD].Profit.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("profit %s", report.Analysis.ByCurrency[core.USD].Profit)
	}
}

func TestSummaryBadRange(t *testing.T) {
	srv, _ := newTestServer(t)

	cases := []string{
		"/api/reports/summary?from=2024-02-01",
		"/api/reports/summary?from=bogus&to=2024-02-29",
		"/api/reports/summary?from=2024-03-01&to=2024-02-01",
	}
	for _, path := range cases {
		rec := doRequest(t, srv, http.MethodGet, path, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status %d, want 400", path, rec.Code)
		}
	}
}

func TestBreakdownEndpoint(t *testing.T) {
	srv, repo := newTestServer(t)

	// 1,200,000 VND over 2024-01-01..2024-02-01 allocates 37,500 to
	// February (1 of 32 days at 37,500/day).
	if _, err := repo.InsertExpense(context.Background(), core.ExpenseRecord{
		MonetaryRecord: core.MonetaryRecord{
			Amount:   decimal.NewFromInt(1_200_000),
			Currency: core.VND,
			Date:     core.NewDate(2024, 1, 1),
			Category: "Hosting",
		},
		Allocatable: true,
		ValidityEnd: core.NewDate(2024, 2, 1),
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	rec := doRequest(t, srv, http.MethodGet, "/api/reports/breakdown?year=2024&month=2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body)
	}

	var breakdown engine.Breakdown
	if err := json.Unmarshal(rec.Body.Bytes(), &breakdown); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !breakdown.Allocated[core.VND].Equal(decimal.NewFromInt(37_500)) {
		t.Fatalf("allocated %s", breakdown.Allocated[core.VND])
	}
	if !breakdown.Actual[core.VND].IsZero() {
		t.Fatalf("actual %s", breakdown.Actual[core.VND])
	}
}

func TestBreakdownBadMonth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/api/reports/breakdown?year=2024&month=13", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
}

func TestComparisonEndpoint(t *testing.T) {
	srv, repo := newTestServer(t)

	if _, err := repo.InsertExpense(context.Background(), core.ExpenseRecord{
		MonetaryRecord: core.MonetaryRecord{
			Amount:   decimal.NewFromInt(200),
			Currency: core.USD,
			Date:     core.NewDate(2024, 2, 10),
			Category: "Ads",
		},
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	rec := doRequest(t, srv, http.MethodGet, "/api/reports/comparison?year=2024&month=2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body)
	}

	var report engine.ComparisonReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !report.CashTotal.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("cash total %s", report.CashTotal)
	}
	if len(report.Insights) == 0 {
		t.Fatalf("expected at least one insight")
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/healthz", nil)
	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Fatalf("%s = %q, want %q", header, got, want)
		}
	}
}

func TestUnknownRoute(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, srv, http.MethodGet, fmt.Sprintf("/api/unknown/%d", 1), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rec.Code)
	}
}
