// Package services orchestrates the record store, the pure reporting
// engine, and the memoization cache into the operations the API exposes.
package services

import (
	"context"
	"fmt"
	"time"

	"finsight/internal/cache"
	"finsight/internal/core"
	"finsight/internal/engine"
	"finsight/internal/storage"
)

// SummaryReport is the period overview: per-currency totals, derived
// ratios, and growth against the immediately preceding period of equal
// length.
type SummaryReport struct {
	Period        core.DateRange                          `json:"period"`
	Revenue       core.CurrencyTotals                     `json:"revenue"`
	Expenses      core.CurrencyTotals                     `json:"expenses"`
	Analysis      engine.Analysis                         `json:"analysis"`
	RevenueGrowth map[core.CurrencyCode]engine.GrowthRate `json:"revenue_growth,omitempty"`
	ExpenseGrowth map[core.CurrencyCode]engine.GrowthRate `json:"expense_growth,omitempty"`
}

// ReportService computes dashboard reports over the current record
// snapshot. The engine itself is pure and recomputes from scratch;
// memoization happens here, keyed on (snapshot version, period), so a
// write to the store invalidates every cached report implicitly.
type ReportService struct {
	repo       storage.Repository
	cache      *cache.ReportCache[any]
	thresholds engine.Thresholds
}

func NewReportService(repo storage.Repository, reportCache *cache.ReportCache[any], thresholds engine.Thresholds) *ReportService {
	return &ReportService{
		repo:       repo,
		cache:      reportCache,
		thresholds: thresholds,
	}
}

// Summary builds the period overview for rng. An unbounded range covers
// all time and carries no growth comparison.
func (s *ReportService) Summary(ctx context.Context, rng core.DateRange) (SummaryReport, error) {
	version, err := s.repo.SnapshotVersion(ctx)
	if err != nil {
		return SummaryReport{}, fmt.Errorf("snapshot version: %w", err)
	}

	key := fmt.Sprintf("summary:v%d:%s:%s", version, rng.Start, rng.End)
	result, err := s.cache.GetOrCompute(key, func() (any, error) {
		return s.computeSummary(ctx, rng)
	})
	if err != nil {
		return SummaryReport{}, err
	}
	return result.(SummaryReport), nil
}

func (s *ReportService) computeSummary(ctx context.Context, rng core.DateRange) (SummaryReport, error) {
	expenses, revenues, err := s.snapshot(ctx)
	if err != nil {
		return SummaryReport{}, err
	}

	expMonetary := core.ExpenseMonetary(expenses)
	revMonetary := core.RevenueMonetary(revenues)

	report := SummaryReport{
		Period:   rng,
		Revenue:  engine.Totals(revMonetary, engine.TotalsOptions{Range: rng}),
		Expenses: engine.Totals(expMonetary, engine.TotalsOptions{Range: rng}),
	}
	report.Analysis = engine.Analyze(report.Revenue, report.Expenses)

	if prev, ok := previousPeriod(rng); ok {
		prevRevenue := engine.Totals(revMonetary, engine.TotalsOptions{Range: prev})
		prevExpenses := engine.Totals(expMonetary, engine.TotalsOptions{Range: prev})

		report.RevenueGrowth = make(map[core.CurrencyCode]engine.GrowthRate, len(core.Currencies()))
		report.ExpenseGrowth = make(map[core.CurrencyCode]engine.GrowthRate, len(core.Currencies()))
		for _, c := range core.Currencies() {
			report.RevenueGrowth[c] = engine.Growth(report.Revenue[c], prevRevenue[c])
			report.ExpenseGrowth[c] = engine.Growth(report.Expenses[c], prevExpenses[c])
		}
	}

	return report, nil
}

// Breakdown builds the monthly accrual-vs-cash expense breakdown. Zero
// year/month target the current month.
func (s *ReportService) Breakdown(ctx context.Context, year, month int) (engine.Breakdown, error) {
	year, month = resolveMonth(year, month)

	version, err := s.repo.SnapshotVersion(ctx)
	if err != nil {
		return engine.Breakdown{}, fmt.Errorf("snapshot version: %w", err)
	}

	key := fmt.Sprintf("breakdown:v%d:%04d-%02d", version, year, month)
	result, err := s.cache.GetOrCompute(key, func() (any, error) {
		expenses, err := s.repo.ListExpenses(ctx)
		if err != nil {
			return nil, fmt.Errorf("list expenses: %w", err)
		}
		return engine.MonthlyBreakdown(expenses, year, month), nil
	})
	if err != nil {
		return engine.Breakdown{}, err
	}
	return result.(engine.Breakdown), nil
}

// Comparison reconciles the month's cash and accrual views and runs the
// insight rules, feeding them the trailing twelve months of cash-basis
// history for the seasonality heuristic.
func (s *ReportService) Comparison(ctx context.Context, year, month int) (engine.ComparisonReport, error) {
	year, month = resolveMonth(year, month)

	version, err := s.repo.SnapshotVersion(ctx)
	if err != nil {
		return engine.ComparisonReport{}, fmt.Errorf("snapshot version: %w", err)
	}

	key := fmt.Sprintf("comparison:v%d:%04d-%02d", version, year, month)
	result, err := s.cache.GetOrCompute(key, func() (any, error) {
		expenses, err := s.repo.ListExpenses(ctx)
		if err != nil {
			return nil, fmt.Errorf("list expenses: %w", err)
		}
		breakdown := engine.MonthlyBreakdown(expenses, year, month)
		history := monthlyHistory(expenses, year, month, 12)
		return engine.Compare(breakdown, history, s.thresholds), nil
	})
	if err != nil {
		return engine.ComparisonReport{}, err
	}
	return result.(engine.ComparisonReport), nil
}

func (s *ReportService) snapshot(ctx context.Context) ([]core.ExpenseRecord, []core.RevenueRecord, error) {
	expenses, err := s.repo.ListExpenses(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list expenses: %w", err)
	}
	revenues, err := s.repo.ListRevenues(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list revenues: %w", err)
	}
	return expenses, revenues, nil
}

// monthlyHistory computes the raw cash-basis spend of the trailing months
// ending at (year, month) inclusive. Months without activity report zero,
// which the seasonality heuristic treats as "not enough history".
func monthlyHistory(expenses []core.ExpenseRecord, year, month, months int) []engine.MonthTotal {
	monetary := core.ExpenseMonetary(expenses)
	history := make([]engine.MonthTotal, 0, months)
	for i := months - 1; i >= 0; i-- {
		y, m := addMonths(year, month, -i)
		totals := engine.Totals(monetary, engine.TotalsOptions{Range: core.MonthRange(y, m)})
		history = append(history, engine.MonthTotal{Year: y, Month: m, Total: totals.Sum()})
	}
	return history
}

// previousPeriod shifts a bounded range back by its own length, ending
// the day before the current period starts.
func previousPeriod(rng core.DateRange) (core.DateRange, bool) {
	if rng.IsUnbounded() || rng.Validate() != nil {
		return core.DateRange{}, false
	}
	days := rng.Days()
	end := core.Date{Time: rng.Start.AddDate(0, 0, -1)}
	start := core.Date{Time: rng.Start.AddDate(0, 0, -days)}
	return core.NewDateRange(start, end), true
}

func resolveMonth(year, month int) (int, int) {
	if year == 0 || month == 0 {
		now := time.Now().UTC()
		return now.Year(), int(now.Month())
	}
	return year, month
}

func addMonths(year, month, delta int) (int, int) {
	t := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	return t.Year(), int(t.Month())
}
