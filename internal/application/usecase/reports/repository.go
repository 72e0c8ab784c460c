// Package reports contains report-related use cases: they orchestrate the
// fetch, normalize, filter and aggregate pipeline around the pure analytics
// engine.
package reports

import (
	"context"
	"time"

	"github.com/chrisemayers/pos-backoffice/internal/application/usecase/analytics"
)

// RecordSource defines the interface for fetching raw transaction and return
// documents. Implementations may pre-filter by range on the storage side as
// an optimization; the engine re-filters, which is idempotent. Fetch failures
// propagate untouched; retries and user-facing mapping belong to the caller.
type RecordSource interface {
	// FetchSales returns the raw sale documents overlapping the range.
	FetchSales(ctx context.Context, r analytics.Range, p analytics.Predicate) ([]analytics.RawSaleRecord, error)

	// FetchReturns returns the raw return documents overlapping the range.
	FetchReturns(ctx context.Context, r analytics.Range, p analytics.Predicate) ([]analytics.RawReturnRecord, error)
}

// ProductCatalog resolves canonical product keys to display names. Not-found
// is a normal outcome, reported via the boolean, never an error.
type ProductCatalog interface {
	DisplayName(ctx context.Context, key string) (string, bool, error)
}

// Settings carries the tenant defaults threaded into every report use case:
// the fallback currency, the store time zone used for day bucketing, and the
// ranking depth. Making these explicit keeps the pipeline free of ambient
// state.
type Settings struct {
	Currency string
	Location *time.Location
	TopN     int
}

func (s Settings) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

// catalogNames adapts the catalog to the aggregator's resolver shape. A
// lookup failure degrades to not-found: a broken catalog must cost us display
// names, never a report.
func catalogNames(ctx context.Context, catalog ProductCatalog) analytics.NameFunc {
	return func(key string) (string, bool) {
		if catalog == nil {
			return "", false
		}
		name, ok, err := catalog.DisplayName(ctx, key)
		if err != nil || !ok {
			return "", false
		}
		return name, true
	}
}
