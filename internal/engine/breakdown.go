package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"finsight/internal/core"
)

type (
	// BreakdownDetail is one expense's contribution to a report, kept for
	// drill-down display.
	BreakdownDetail struct {
		Expense core.ExpenseRecord `json:"expense"`
		Amount  decimal.Decimal    `json:"amount"`
	}

	// CategoryBreakdown splits one category's totals by currency under
	// both accounting views.
	CategoryBreakdown struct {
		Allocated core.CurrencyTotals `json:"allocated"`
		Actual    core.CurrencyTotals `json:"actual"`
	}

	// Breakdown is the full expense picture for one reporting period:
	// accrual (allocated) and cash (actual) totals per currency, the same
	// split per category, and the non-zero contributions per record.
	Breakdown struct {
		Period           core.DateRange                `json:"period"`
		Allocated        core.CurrencyTotals           `json:"allocated"`
		Actual           core.CurrencyTotals           `json:"actual"`
		ByCategory       map[string]*CategoryBreakdown `json:"by_category"`
		AllocatedDetails []BreakdownDetail             `json:"allocated_details"`
		ActualDetails    []BreakdownDetail             `json:"actual_details"`
	}
)

// MonthlyBreakdown walks the expense set once and builds the allocated and
// actual breakdown for one calendar month. Zero year/month target the
// current month. Expenses contributing nothing to either view are summed
// (a no-op) but not recorded as detail rows.
func MonthlyBreakdown(expenses []core.ExpenseRecord, year, month int) Breakdown {
	if year == 0 || month == 0 {
		now := time.Now().UTC()
		year, month = now.Year(), int(now.Month())
	}
	return RangeBreakdown(expenses, core.MonthRange(year, month))
}

// RangeBreakdown is MonthlyBreakdown generalized to an arbitrary period.
func RangeBreakdown(expenses []core.ExpenseRecord, period core.DateRange) Breakdown {
	b := Breakdown{
		Period:     period,
		Allocated:  core.NewCurrencyTotals(),
		Actual:     core.NewCurrencyTotals(),
		ByCategory: make(map[string]*CategoryBreakdown),
	}

	for _, exp := range expenses {
		allocated := AllocatedAmount(exp, period)
		actual := ActualAmount(exp, period)

		b.Allocated.Add(exp.Currency, allocated)
		b.Actual.Add(exp.Currency, actual)

		if !allocated.IsZero() || !actual.IsZero() {
			cat := b.category(exp.Category)
			cat.Allocated.Add(exp.Currency, allocated)
			cat.Actual.Add(exp.Currency, actual)
		}
		if !allocated.IsZero() {
			b.AllocatedDetails = append(b.AllocatedDetails, BreakdownDetail{Expense: exp, Amount: allocated})
		}
		if !actual.IsZero() {
			b.ActualDetails = append(b.ActualDetails, BreakdownDetail{Expense: exp, Amount: actual})
		}
	}

	return b
}

func (b *Breakdown) category(name string) *CategoryBreakdown {
	cat, ok := b.ByCategory[name]
	if !ok {
		cat = &CategoryBreakdown{
			Allocated: core.NewCurrencyTotals(),
			Actual:    core.NewCurrencyTotals(),
		}
		b.ByCategory[name] = cat
	}
	return cat
}
