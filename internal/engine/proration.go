// Package engine implements the accrual-allocation and cash-flow
// reconciliation calculations behind the dashboard reports.
//
// Every function here is pure: it reads an immutable record snapshot plus
// explicit parameters and returns plain data. Malformed records degrade to
// zero contributions instead of errors, so a report over dirty data is
// simply all-zero rather than a failure.
package engine

import (
	"github.com/shopspring/decimal"

	"finsight/internal/core"
)

// AllocatedAmount returns the portion of an expense recognized inside rng
// under accrual rules. The amount is amortized at an even daily rate over
// the validity window [exp.Date, exp.ValidityEnd], inclusive on both ends,
// and the days overlapping rng are recognized.
//
// Non-allocatable expenses, missing dates, and inverted validity windows
// all yield zero. The result never exceeds exp.Amount: the overlap is cut
// from the validity window, so its day count cannot exceed the window's.
func AllocatedAmount(exp core.ExpenseRecord, rng core.DateRange) decimal.Decimal {
	if !exp.Allocatable {
		return decimal.Zero
	}
	if exp.Date.IsZero() || exp.ValidityEnd.IsZero() {
		return decimal.Zero
	}
	if !exp.ValidityEnd.After(exp.Date) {
		// validityEnd <= date is "not a valid allocation", not an error.
		return decimal.Zero
	}

	window := core.NewDateRange(exp.Date, exp.ValidityEnd)
	totalDays := window.Days()
	dailyRate := exp.Amount.Div(decimal.NewFromInt(int64(totalDays)))

	if rng.IsUnbounded() {
		// All time covers the whole window.
		return exp.Amount
	}

	overlap, ok := window.Overlap(rng)
	if !ok {
		return decimal.Zero
	}
	return dailyRate.Mul(decimal.NewFromInt(int64(overlap.Days())))
}
