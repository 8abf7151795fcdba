package engine

import (
	"github.com/shopspring/decimal"

	"finsight/internal/core"
)

// ActualAmount returns the cash-basis recognition of an expense for rng:
// the full amount when the payment date falls inside the range, zero
// otherwise. The allocation flag is deliberately ignored; cash basis is
// always all-or-nothing on the day money moved.
func ActualAmount(exp core.ExpenseRecord, rng core.DateRange) decimal.Decimal {
	if exp.Date.IsZero() {
		return decimal.Zero
	}
	if !rng.Contains(exp.Date) {
		return decimal.Zero
	}
	return exp.Amount
}
