package engine

import "finsight/internal/core"

// TotalsOptions narrows a currency aggregation. All filters are optional;
// the zero value aggregates everything.
type TotalsOptions struct {
	// Range keeps only records whose date falls inside it, inclusive.
	Range core.DateRange
	// On keeps only records recognized exactly on this date. Takes
	// precedence over Range when set.
	On core.Date
	// Currency restricts the aggregation to a single bucket; the other
	// currencies report zero.
	Currency core.CurrencyCode
}

// Totals sums record amounts grouped by currency. The result always
// carries every supported currency key, zero included. Records with a
// zero date are excluded from date-filtered aggregations but counted when
// no date filter applies; records with an unknown currency are dropped.
//
// Expenses and revenue transactions share this function through their
// common monetary projection (core.ExpenseMonetary, core.RevenueMonetary).
func Totals(records []core.MonetaryRecord, opts TotalsOptions) core.CurrencyTotals {
	totals := core.NewCurrencyTotals()
	for _, rec := range records {
		if opts.Currency != "" && rec.Currency != opts.Currency {
			continue
		}
		if !opts.On.IsZero() {
			if !rec.Date.Equal(opts.On) {
				continue
			}
		} else if !opts.Range.IsUnbounded() && !opts.Range.Contains(rec.Date) {
			continue
		}
		totals.Add(rec.Currency, rec.Amount)
	}
	return totals
}
