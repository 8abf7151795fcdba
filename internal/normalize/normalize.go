// Package normalize maps raw, loosely-typed record payloads onto the
// canonical shapes in internal/core.
//
// Upstream exports name the same fields in English or Vietnamese
// (amount/soTien, date/ngayTao, ...), type amounts as numbers or strings,
// and encode the allocation flag as "Có"/"Không". All of that variance is
// resolved here, once, at the input boundary; the engine only ever sees
// canonical records. Malformed values never produce errors: a bad amount
// becomes zero and a bad date becomes the zero date, which downstream
// aggregation treats as "contributes nothing".
package normalize

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"finsight/internal/core"
)

var (
	expenseAmountKeys   = []string{"amount", "soTien"}
	expenseDateKeys     = []string{"date", "ngayTao"}
	categoryKeys        = []string{"category", "danhMuc"}
	allocationKeys      = []string{"periodicAllocation", "phanBo"}
	validityEndKeys     = []string{"renewDate", "ngayTaiTuc", "validityEnd"}
	revenueAmountKeys   = []string{"revenue", "amount"}
	revenueDateKeys     = []string{"date", "transactionDate"}
	dateLayouts         = []string{"2006-01-02", "02/01/2006", time.RFC3339}
	affirmativeStrings  = []string{"có", "co", "true", "yes", "1"}
)

// Expense maps one raw expense object onto the canonical record.
func Expense(raw map[string]any) core.ExpenseRecord {
	exp := core.ExpenseRecord{
		ID: stringField(raw, "id"),
		MonetaryRecord: core.MonetaryRecord{
			Amount:   amountField(raw, expenseAmountKeys),
			Currency: currencyField(raw),
			Date:     dateField(raw, expenseDateKeys),
			Category: stringField(raw, categoryKeys...),
		},
		Allocatable: boolField(raw, allocationKeys),
	}
	if exp.Allocatable {
		exp.ValidityEnd = dateField(raw, validityEndKeys)
	}
	return exp
}

// Revenue maps one raw revenue/transaction object onto the canonical
// record.
func Revenue(raw map[string]any) core.RevenueRecord {
	return core.RevenueRecord{
		ID: stringField(raw, "id"),
		MonetaryRecord: core.MonetaryRecord{
			Amount:   amountField(raw, revenueAmountKeys),
			Currency: currencyField(raw),
			Date:     dateField(raw, revenueDateKeys),
			Category: stringField(raw, categoryKeys...),
		},
		Status: stringField(raw, "status"),
	}
}

// Expenses normalizes a whole raw collection.
func Expenses(raws []map[string]any) []core.ExpenseRecord {
	out := make([]core.ExpenseRecord, len(raws))
	for i, raw := range raws {
		out[i] = Expense(raw)
	}
	return out
}

// Revenues normalizes a whole raw collection.
func Revenues(raws []map[string]any) []core.RevenueRecord {
	out := make([]core.RevenueRecord, len(raws))
	for i, raw := range raws {
		out[i] = Revenue(raw)
	}
	return out
}

func lookup(raw map[string]any, keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// amountField accepts numbers, json.Number, and numeric strings. Anything
// else, including negative noise like "abc", contributes zero.
func amountField(raw map[string]any, keys []string) decimal.Decimal {
	v, ok := lookup(raw, keys)
	if !ok {
		return decimal.Zero
	}
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n)
	case int:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case json.Number:
		if d, err := decimal.NewFromString(n.String()); err == nil {
			return d
		}
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(n), ",", "")
		if d, err := decimal.NewFromString(s); err == nil {
			return d
		}
	}
	return decimal.Zero
}

func currencyField(raw map[string]any) core.CurrencyCode {
	s := stringField(raw, "currency")
	if c, ok := core.ParseCurrency(s); ok {
		return c
	}
	// Unknown codes are kept verbatim so storage stays faithful; the
	// aggregator drops them from currency buckets.
	return core.CurrencyCode(strings.ToUpper(strings.TrimSpace(s)))
}

func dateField(raw map[string]any, keys []string) core.Date {
	v, ok := lookup(raw, keys)
	if !ok {
		return core.Date{}
	}
	switch d := v.(type) {
	case time.Time:
		return core.DateOf(d)
	case string:
		s := strings.TrimSpace(d)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return core.DateOf(t)
			}
		}
	}
	return core.Date{}
}

func boolField(raw map[string]any, keys []string) bool {
	v, ok := lookup(raw, keys)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		s := strings.ToLower(strings.TrimSpace(b))
		for _, yes := range affirmativeStrings {
			if s == yes {
				return true
			}
		}
	}
	return false
}

func stringField(raw map[string]any, keys ...string) string {
	v, ok := lookup(raw, keys)
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}
