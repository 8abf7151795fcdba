package core

import "github.com/shopspring/decimal"

// CurrencyTotals maps every supported currency to a sum. All keys are
// always present, zero included, so consumers can index without existence
// checks.
type CurrencyTotals map[CurrencyCode]decimal.Decimal

// NewCurrencyTotals returns a totals map with every currency at zero.
func NewCurrencyTotals() CurrencyTotals {
	t := make(CurrencyTotals, len(Currencies()))
	for _, c := range Currencies() {
		t[c] = decimal.Zero
	}
	return t
}

// Add accumulates amount into the currency's bucket. Unknown currencies
// are ignored rather than creating stray keys.
func (t CurrencyTotals) Add(currency CurrencyCode, amount decimal.Decimal) {
	if _, ok := t[currency]; !ok {
		return
	}
	t[currency] = t[currency].Add(amount)
}

// Clone returns an independent copy.
func (t CurrencyTotals) Clone() CurrencyTotals {
	out := make(CurrencyTotals, len(t))
	for c, v := range t {
		out[c] = v
	}
	return out
}

// Sum adds the raw numeric values of all buckets together, without any
// currency conversion. Callers that need a real consolidated figure must
// convert first; see engine.Analysis.Unconverted.
func (t CurrencyTotals) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, c := range Currencies() {
		sum = sum.Add(t[c])
	}
	return sum
}
