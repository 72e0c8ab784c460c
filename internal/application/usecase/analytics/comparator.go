package analytics

import "github.com/shopspring/decimal"

// MetricChanges holds the period-over-period percentage changes derived from
// two summaries.
type MetricChanges struct {
	Revenue           decimal.Decimal
	Sales             decimal.Decimal
	AverageOrderValue decimal.Decimal
}

// ComparisonReport pairs a current and a previous summary with their derived
// percentage changes.
type ComparisonReport struct {
	Current  SalesSummary
	Previous SalesSummary
	Changes  MetricChanges
}

// PercentChange evaluates ((current - previous) / previous) * 100, rounded to
// two places. When previous is zero the change is reported as exactly zero,
// even for a nonzero current. That masks "went from nothing to something" as
// "no change", but it keeps Infinity and NaN out of every consumer; callers
// must not read a zero here as a true zero-change result.
func PercentChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(2)
}

// Compare derives the change metrics between two independently aggregated
// summaries. Revenue, transaction count and average order value change are
// evaluated independently under the PercentChange zero policy.
func Compare(current, previous SalesSummary) ComparisonReport {
	return ComparisonReport{
		Current:  current,
		Previous: previous,
		Changes: MetricChanges{
			Revenue: PercentChange(current.TotalRevenue(), previous.TotalRevenue()),
			Sales: PercentChange(
				decimal.NewFromInt(int64(current.TotalSales)),
				decimal.NewFromInt(int64(previous.TotalSales)),
			),
			AverageOrderValue: PercentChange(current.AverageOrderValue(), previous.AverageOrderValue()),
		},
	}
}
