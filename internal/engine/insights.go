package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"finsight/internal/core"
)

// Balance classifications, mapped from the absolute cash-vs-accrual
// percent difference.
const (
	BalanceExcellent = "excellent"
	BalanceGood      = "good"
	BalanceWarning   = "warning"
	BalanceCritical  = "critical"
)

type (
	// Thresholds are the business-tunable constants of the insight rules.
	// The three-tier percent classification itself is structural and not
	// configurable beyond its cut-off values.
	Thresholds struct {
		// LargePayment marks a single cash payment as "large", per
		// currency. Currencies without an entry never trigger the rule.
		LargePayment map[core.CurrencyCode]decimal.Decimal
		// Percent cut-offs between excellent/good/warning/critical.
		BalancedPct   decimal.Decimal
		NoticeablePct decimal.Decimal
		CriticalPct   decimal.Decimal
		// SeasonalRatio is the busiest/quietest quarter average ratio
		// above which spending counts as seasonal.
		SeasonalRatio decimal.Decimal
	}

	// MonthTotal is one month of historical cash-basis spending, used by
	// the seasonal-pattern heuristic.
	MonthTotal struct {
		Year  int             `json:"year"`
		Month int             `json:"month"`
		Total decimal.Decimal `json:"total"`
	}

	// ComparisonReport reconciles the cash and accrual views of one
	// period and carries the generated insights and recommendations.
	ComparisonReport struct {
		CashTotal         decimal.Decimal       `json:"cash_total"`
		AccrualTotal      decimal.Decimal       `json:"accrual_total"`
		TotalDifference   decimal.Decimal       `json:"total_difference"`
		PercentDifference decimal.Decimal       `json:"percent_difference"`
		Classification    string                `json:"classification"`
		LargePayments     int                   `json:"large_payments"`
		AllocatedCount    int                   `json:"allocated_count"`
		Insights          []core.Insight        `json:"insights"`
		Recommendations   []core.Recommendation `json:"recommendations"`
	}

	comparisonContext struct {
		breakdown Breakdown
		history   []MonthTotal
		th        Thresholds
		report    *ComparisonReport
	}

	// comparisonRule pairs a predicate with a builder. Rules are
	// independent of each other's outcome and evaluated in fixed order;
	// each appends at most one insight and at most one recommendation.
	comparisonRule struct {
		name string
		when func(*comparisonContext) bool
		emit func(*comparisonContext)
	}
)

// DefaultThresholds returns the stock rule constants.
func DefaultThresholds() Thresholds {
	return Thresholds{
		LargePayment: map[core.CurrencyCode]decimal.Decimal{
			core.VND: decimal.NewFromInt(5_000_000),
			core.USD: decimal.NewFromInt(500),
			core.NGN: decimal.NewFromInt(200_000),
		},
		BalancedPct:   decimal.NewFromInt(5),
		NoticeablePct: decimal.NewFromInt(15),
		CriticalPct:   decimal.NewFromInt(30),
		SeasonalRatio: decimal.NewFromFloat(1.5),
	}
}

// ClassifyBalance maps an absolute percent difference onto the four-tier
// classification.
func ClassifyBalance(pctAbs decimal.Decimal, th Thresholds) string {
	switch {
	case pctAbs.LessThan(th.BalancedPct):
		return BalanceExcellent
	case pctAbs.LessThan(th.NoticeablePct):
		return BalanceGood
	case pctAbs.LessThan(th.CriticalPct):
		return BalanceWarning
	default:
		return BalanceCritical
	}
}

// Compare reconciles one period's cash-flow and accrual views and runs
// the insight rules over the result. The totals feeding the comparison
// are the raw per-currency sums added together, matching the consolidated
// summary's historical unconverted behavior.
func Compare(b Breakdown, history []MonthTotal, th Thresholds) ComparisonReport {
	report := ComparisonReport{
		CashTotal:    b.Actual.Sum(),
		AccrualTotal: b.Allocated.Sum(),
	}
	report.TotalDifference = report.CashTotal.Sub(report.AccrualTotal)
	if !report.AccrualTotal.IsZero() {
		report.PercentDifference = report.TotalDifference.Div(report.AccrualTotal).Mul(hundred)
	}
	report.Classification = ClassifyBalance(report.PercentDifference.Abs(), th)

	ctx := &comparisonContext{breakdown: b, history: history, th: th, report: &report}
	for _, rule := range comparisonRules {
		if rule.when(ctx) {
			rule.emit(ctx)
		}
	}
	return report
}

var comparisonRules = []comparisonRule{
	{
		name: "large-payments",
		when: func(c *comparisonContext) bool {
			c.report.LargePayments = countLargePayments(c.breakdown.ActualDetails, c.th)
			return c.report.LargePayments > 0
		},
		emit: func(c *comparisonContext) {
			c.addInsight(core.InsightInfo, "Large one-off payments",
				fmt.Sprintf("%d payment(s) in this period exceed the large-payment threshold and weigh on cash flow.", c.report.LargePayments))
		},
	},
	{
		name: "allocated-expenses",
		when: func(c *comparisonContext) bool {
			c.report.AllocatedCount = countAllocated(c.breakdown.AllocatedDetails)
			return c.report.AllocatedCount > 0
		},
		emit: func(c *comparisonContext) {
			c.addInsight(core.InsightInfo, "Allocated expenses",
				fmt.Sprintf("%d periodic expense(s) contribute to this period through accrual allocation.", c.report.AllocatedCount))
		},
	},
	{
		name: "balance-classification",
		when: func(c *comparisonContext) bool { return true },
		emit: func(c *comparisonContext) {
			pct := c.report.PercentDifference
			pctAbs := pct.Abs()
			switch c.report.Classification {
			case BalanceExcellent:
				c.addInsight(core.InsightSuccess, "Cash flow and accrual well balanced",
					fmt.Sprintf("Cash and accrual views differ by only %s%%.", pctAbs.StringFixed(1)))
			case BalanceGood:
				c.addInsight(core.InsightInfo, "Moderate cash-vs-accrual gap",
					fmt.Sprintf("Cash and accrual views differ by %s%%.", pctAbs.StringFixed(1)))
			default:
				c.addInsight(core.InsightWarning, "Significant cash-vs-accrual gap",
					fmt.Sprintf("Cash and accrual views differ by %s%%.", pctAbs.StringFixed(1)))
				priority := core.PriorityMedium
				if pctAbs.GreaterThanOrEqual(c.th.CriticalPct) {
					priority = core.PriorityHigh
				}
				c.addRecommendation(core.InsightWarning, priority, "Reconcile cash flow against accrual",
					"The two accounting views have drifted apart; review the period's allocations and payment timing.")
			}
		},
	},
	{
		name: "difference-direction",
		when: func(c *comparisonContext) bool { return !c.report.TotalDifference.IsZero() },
		emit: func(c *comparisonContext) {
			if c.report.TotalDifference.IsPositive() {
				c.addRecommendation(core.InsightInfo, core.PriorityMedium, "Cash outflow exceeds accrual cost",
					"More money left than the period consumed; look for large one-off payments covering future periods.")
				return
			}
			c.addRecommendation(core.InsightInfo, core.PriorityMedium, "Accrual cost exceeds cash outflow",
				"The period consumed more than was paid; review allocations whose payments fell outside the period.")
		},
	},
	{
		name: "seasonal-pattern",
		when: func(c *comparisonContext) bool {
			return len(c.history) >= 12 && seasonalPattern(c.history, c.th.SeasonalRatio)
		},
		emit: func(c *comparisonContext) {
			c.addRecommendation(core.InsightInfo, core.PriorityLow, "Seasonal spending detected",
				"Spending concentrates in particular quarters; plan cash reserves around the busy season.")
		},
	},
}

func (c *comparisonContext) addInsight(typ core.InsightType, title, message string) {
	c.report.Insights = append(c.report.Insights, core.Insight{Type: typ, Title: title, Message: message})
}

func (c *comparisonContext) addRecommendation(typ core.InsightType, priority core.Priority, title, message string) {
	c.report.Recommendations = append(c.report.Recommendations, core.Recommendation{
		Type: typ, Priority: priority, Title: title, Message: message,
	})
}

func countLargePayments(details []BreakdownDetail, th Thresholds) int {
	count := 0
	for _, d := range details {
		threshold, ok := th.LargePayment[d.Expense.Currency]
		if !ok {
			continue
		}
		if d.Amount.GreaterThanOrEqual(threshold) {
			count++
		}
	}
	return count
}

func countAllocated(details []BreakdownDetail) int {
	count := 0
	for _, d := range details {
		if d.Expense.Allocatable {
			count++
		}
	}
	return count
}

// seasonalPattern buckets monthly history into calendar quarters and
// reports true when the busiest quarter's average spend exceeds the
// quietest's by the configured ratio.
func seasonalPattern(history []MonthTotal, ratio decimal.Decimal) bool {
	sums := [4]decimal.Decimal{decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero}
	counts := [4]int{}
	for _, m := range history {
		if m.Month < 1 || m.Month > 12 {
			continue
		}
		q := (m.Month - 1) / 3
		sums[q] = sums[q].Add(m.Total)
		counts[q]++
	}

	var minAvg, maxAvg decimal.Decimal
	seen := false
	for q := 0; q < 4; q++ {
		if counts[q] == 0 {
			return false
		}
		avg := sums[q].Div(decimal.NewFromInt(int64(counts[q])))
		if !seen {
			minAvg, maxAvg = avg, avg
			seen = true
			continue
		}
		if avg.LessThan(minAvg) {
			minAvg = avg
		}
		if avg.GreaterThan(maxAvg) {
			maxAvg = avg
		}
	}
	if !seen || !minAvg.IsPositive() {
		return false
	}
	return maxAvg.GreaterThanOrEqual(minAvg.Mul(ratio))
}
