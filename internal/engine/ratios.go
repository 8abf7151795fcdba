package engine

import (
	"github.com/shopspring/decimal"

	"finsight/internal/core"
)

var hundred = decimal.NewFromInt(100)

type (
	// CurrencyAnalysis is the profitability picture for one currency.
	// Margin and ratio are percentages; both report zero when revenue is
	// zero rather than dividing by it.
	CurrencyAnalysis struct {
		Revenue      decimal.Decimal `json:"revenue"`
		Expenses     decimal.Decimal `json:"expenses"`
		Profit       decimal.Decimal `json:"profit"`
		ProfitMargin decimal.Decimal `json:"profit_margin"`
		ExpenseRatio decimal.Decimal `json:"expense_ratio"`
	}

	// ConsolidatedSummary adds the raw numeric values of every currency
	// together without conversion, mirroring the dashboard's historical
	// "as if one currency" figure. Unconverted is set whenever more than
	// one currency actually contributed, so consumers can refuse to
	// present the number as a real total.
	ConsolidatedSummary struct {
		TotalRevenue  decimal.Decimal `json:"total_revenue"`
		TotalExpenses decimal.Decimal `json:"total_expenses"`
		TotalProfit   decimal.Decimal `json:"total_profit"`
		OverallMargin decimal.Decimal `json:"overall_margin"`
		Unconverted   bool            `json:"unconverted"`
	}

	// Analysis is the full ratio report over one reporting period.
	Analysis struct {
		ByCurrency   map[core.CurrencyCode]CurrencyAnalysis `json:"by_currency"`
		Consolidated ConsolidatedSummary                    `json:"consolidated"`
	}
)

// Analyze derives profit, margin, and expense ratio per currency from a
// revenue totals map and an expense totals map, plus the consolidated
// cross-currency summary.
func Analyze(revenue, expenses core.CurrencyTotals) Analysis {
	byCurrency := make(map[core.CurrencyCode]CurrencyAnalysis, len(core.Currencies()))
	active := 0
	for _, c := range core.Currencies() {
		rev := revenue[c]
		exp := expenses[c]
		if !rev.IsZero() || !exp.IsZero() {
			active++
		}

		ca := CurrencyAnalysis{
			Revenue:  rev,
			Expenses: exp,
			Profit:   rev.Sub(exp),
		}
		if !rev.IsZero() {
			ca.ProfitMargin = ca.Profit.Div(rev).Mul(hundred)
			ca.ExpenseRatio = exp.Div(rev).Mul(hundred)
		}
		byCurrency[c] = ca
	}

	totalRev := revenue.Sum()
	totalExp := expenses.Sum()
	consolidated := ConsolidatedSummary{
		TotalRevenue:  totalRev,
		TotalExpenses: totalExp,
		TotalProfit:   totalRev.Sub(totalExp),
		Unconverted:   active > 1,
	}
	if !totalRev.IsZero() {
		consolidated.OverallMargin = consolidated.TotalProfit.Div(totalRev).Mul(hundred)
	}

	return Analysis{ByCurrency: byCurrency, Consolidated: consolidated}
}
