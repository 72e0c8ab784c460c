package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chrisemayers/pos-backoffice/internal/domain/entity"
)

// UnknownProductName is the literal fallback used when the catalog cannot
// resolve a product key. Unresolvable keys are never an error.
const UnknownProductName = "Unknown Product"

// DefaultTopN is the ranking truncation used when the caller does not ask
// for a specific depth.
const DefaultTopN = 10

// dayKeyFormat is the calendar-day bucket key. The fixed-width form is load
// bearing: the daily series is ordered by plain string comparison, which is
// only correct for zero-padded YYYY-MM-DD keys.
const dayKeyFormat = "2006-01-02"

// NameFunc resolves a product key to a display name. A false return means
// not-found; the aggregator substitutes UnknownProductName.
type NameFunc func(key string) (string, bool)

// TopProduct is one row of the per-product ranking.
type TopProduct struct {
	ProductKey   string
	ProductName  string
	Quantity     int64
	RevenueCents int64
}

// Revenue returns the row's revenue as a decimal derived from cents.
func (p TopProduct) Revenue() decimal.Decimal {
	return decimal.New(p.RevenueCents, -2)
}

// DailyRevenuePoint is one (calendar day, revenue) pair of the daily series.
type DailyRevenuePoint struct {
	Date         string
	RevenueCents int64
}

// Revenue returns the day's revenue as a decimal derived from cents.
func (p DailyRevenuePoint) Revenue() decimal.Decimal {
	return decimal.New(p.RevenueCents, -2)
}

// SalesSummary is the aggregated output for one filtered record set. It is a
// pure derivation with no lifecycle of its own: recomputed on demand, never
// patched in place. TotalRevenueCents is authoritative; the decimal accessors
// derive from it.
type SalesSummary struct {
	TotalSales        int
	TotalRevenueCents int64
	TopProducts       []TopProduct
	DailyRevenue      []DailyRevenuePoint
	ByPaymentType     map[string]int
}

// TotalRevenue returns the summary revenue as a decimal derived from cents.
func (s SalesSummary) TotalRevenue() decimal.Decimal {
	return decimal.New(s.TotalRevenueCents, -2)
}

// AverageOrderValue is revenue divided by transaction count, rounded to two
// places. An empty set yields exactly zero by an explicit branch, never a
// division by zero.
func (s SalesSummary) AverageOrderValue() decimal.Decimal {
	if s.TotalSales == 0 {
		return decimal.Zero
	}
	return s.TotalRevenue().Div(decimal.NewFromInt(int64(s.TotalSales))).Round(2)
}

// ReturnsSummary is the aggregated output for one filtered return set.
type ReturnsSummary struct {
	TotalReturns       int
	TotalRefundedCents int64
	TotalItemsReturned int64
}

// TotalRefunded returns the refunded amount as a decimal derived from cents.
func (s ReturnsSummary) TotalRefunded() decimal.Decimal {
	return decimal.New(s.TotalRefundedCents, -2)
}

// AggregateOptions parameterizes AggregateSales. The zero value resolves no
// names (everything becomes UnknownProductName), truncates to DefaultTopN and
// buckets days in UTC.
type AggregateOptions struct {
	Names    NameFunc
	TopN     int
	Location *time.Location
}

type productAccumulator struct {
	key          string
	quantity     int64
	revenueCents int64
}

// AggregateSales computes the sales summary for an already filtered,
// immutable record set. Revenue is the post-discount charged amount. Product
// rows sort by revenue descending with ties broken by first-seen insertion
// order, a stable-sort convention rather than a business rule. Day buckets use
// one fixed zone for every record; mixing zones would break day-bucket
// identity.
func AggregateSales(records []entity.SaleRecord, opts AggregateOptions) SalesSummary {
	topN := opts.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	summary := SalesSummary{
		TotalSales:    len(records),
		ByPaymentType: make(map[string]int),
	}

	byProduct := make(map[string]*productAccumulator)
	productOrder := make([]string, 0)
	byDay := make(map[string]int64)

	for _, rec := range records {
		summary.TotalRevenueCents += rec.TotalCents

		acc, seen := byProduct[rec.ProductKey]
		if !seen {
			acc = &productAccumulator{key: rec.ProductKey}
			byProduct[rec.ProductKey] = acc
			productOrder = append(productOrder, rec.ProductKey)
		}
		acc.quantity += rec.Quantity
		acc.revenueCents += rec.TotalCents

		byDay[rec.OccurredAt.In(loc).Format(dayKeyFormat)] += rec.TotalCents

		summary.ByPaymentType[rec.PaymentType]++
	}

	ranked := make([]*productAccumulator, 0, len(productOrder))
	for _, key := range productOrder {
		ranked = append(ranked, byProduct[key])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].revenueCents > ranked[j].revenueCents
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	summary.TopProducts = make([]TopProduct, 0, len(ranked))
	for _, acc := range ranked {
		name, ok := "", false
		if opts.Names != nil {
			name, ok = opts.Names(acc.key)
		}
		if !ok || name == "" {
			name = UnknownProductName
		}
		summary.TopProducts = append(summary.TopProducts, TopProduct{
			ProductKey:   acc.key,
			ProductName:  name,
			Quantity:     acc.quantity,
			RevenueCents: acc.revenueCents,
		})
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)
	summary.DailyRevenue = make([]DailyRevenuePoint, 0, len(days))
	for _, day := range days {
		summary.DailyRevenue = append(summary.DailyRevenue, DailyRevenuePoint{
			Date:         day,
			RevenueCents: byDay[day],
		})
	}

	return summary
}

// AggregateReturns computes the returns summary for an already filtered
// return set. Items returned sums the quantities across every line item of
// every matching return.
func AggregateReturns(records []entity.ReturnRecord) ReturnsSummary {
	summary := ReturnsSummary{TotalReturns: len(records)}
	for _, rec := range records {
		summary.TotalRefundedCents += rec.RefundCents
		for _, item := range rec.Items {
			summary.TotalItemsReturned += item.Quantity
		}
	}
	return summary
}
