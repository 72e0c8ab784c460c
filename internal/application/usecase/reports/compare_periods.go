// Package reports contains report-related use cases.
package reports

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chrisemayers/pos-backoffice/internal/application/usecase/analytics"
)

// ComparePeriodsInput represents the input for a period-over-period report.
// Current and Previous are independent fully bounded ranges; callers building
// them from a named period should use analytics.ComparisonRanges.
type ComparePeriodsInput struct {
	Current     analytics.Range
	Previous    analytics.Range
	PaymentType string
	Query       string
	Now         time.Time
}

// ComparePeriodsOutput represents the output of a period-over-period report.
type ComparePeriodsOutput struct {
	CurrentRange  analytics.Range
	PreviousRange analytics.Range
	Report        analytics.ComparisonReport
}

// ComparePeriodsUseCase aggregates two independent periods and derives their
// percentage-change metrics.
type ComparePeriodsUseCase struct {
	records  RecordSource
	catalog  ProductCatalog
	settings Settings
}

// NewComparePeriodsUseCase creates a new ComparePeriodsUseCase instance.
func NewComparePeriodsUseCase(records RecordSource, catalog ProductCatalog, settings Settings) *ComparePeriodsUseCase {
	return &ComparePeriodsUseCase{
		records:  records,
		catalog:  catalog,
		settings: settings,
	}
}

// Execute runs the two period pipelines concurrently. Each pipeline fetches,
// normalizes, filters and aggregates its own record set with no shared mutable
// state, so the only coordination needed is waiting for both.
func (uc *ComparePeriodsUseCase) Execute(
	ctx context.Context,
	input ComparePeriodsInput,
) (*ComparePeriodsOutput, error) {
	currentRange, err := validateRange(input.Current.Start, input.Current.End)
	if err != nil {
		return nil, err
	}
	previousRange, err := validateRange(input.Previous.Start, input.Previous.End)
	if err != nil {
		return nil, err
	}

	predicate := analytics.Predicate{PaymentType: input.PaymentType, Query: input.Query}

	var current, previous analytics.SalesSummary

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary, err := uc.aggregateRange(gctx, currentRange, predicate, input.Now)
		if err != nil {
			return fmt.Errorf("current period: %w", err)
		}
		current = summary
		return nil
	})
	g.Go(func() error {
		summary, err := uc.aggregateRange(gctx, previousRange, predicate, input.Now)
		if err != nil {
			return fmt.Errorf("previous period: %w", err)
		}
		previous = summary
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ComparePeriodsOutput{
		CurrentRange:  currentRange,
		PreviousRange: previousRange,
		Report:        analytics.Compare(current, previous),
	}, nil
}

func (uc *ComparePeriodsUseCase) aggregateRange(
	ctx context.Context,
	r analytics.Range,
	predicate analytics.Predicate,
	now time.Time,
) (analytics.SalesSummary, error) {
	raws, err := uc.records.FetchSales(ctx, r, predicate)
	if err != nil {
		return analytics.SalesSummary{}, fmt.Errorf("failed to fetch sales: %w", err)
	}

	records, err := analytics.NormalizeSales(raws, analytics.NormalizeContext{
		Currency: uc.settings.Currency,
		Location: uc.settings.location(),
		Now:      now,
	})
	if err != nil {
		return analytics.SalesSummary{}, err
	}

	filtered := analytics.FilterSales(records, r, predicate)

	return analytics.AggregateSales(filtered, analytics.AggregateOptions{
		Names:    catalogNames(ctx, uc.catalog),
		TopN:     uc.settings.TopN,
		Location: uc.settings.location(),
	}), nil
}
