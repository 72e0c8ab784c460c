// Package reports contains report-related use cases.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/chrisemayers/pos-backoffice/internal/application/usecase/analytics"
	domainerror "github.com/chrisemayers/pos-backoffice/internal/domain/error"
)

// GetSalesSummaryInput represents the input for building a sales summary.
// Now is the injected clock used for both range math and the timestamp
// fallback during normalization.
type GetSalesSummaryInput struct {
	Start       time.Time
	End         time.Time
	PaymentType string
	Query       string
	Now         time.Time
}

// GetSalesSummaryOutput represents the output of building a sales summary.
type GetSalesSummaryOutput struct {
	Range   analytics.Range
	Summary analytics.SalesSummary
}

// GetSalesSummaryUseCase aggregates the sales of one time range into a
// decision-ready summary.
type GetSalesSummaryUseCase struct {
	records  RecordSource
	catalog  ProductCatalog
	settings Settings
}

// NewGetSalesSummaryUseCase creates a new GetSalesSummaryUseCase instance.
func NewGetSalesSummaryUseCase(records RecordSource, catalog ProductCatalog, settings Settings) *GetSalesSummaryUseCase {
	return &GetSalesSummaryUseCase{
		records:  records,
		catalog:  catalog,
		settings: settings,
	}
}

// Execute fetches the raw sales, normalizes them, applies the range filter
// and aggregates the result.
func (uc *GetSalesSummaryUseCase) Execute(
	ctx context.Context,
	input GetSalesSummaryInput,
) (*GetSalesSummaryOutput, error) {
	r, err := validateRange(input.Start, input.End)
	if err != nil {
		return nil, err
	}

	predicate := analytics.Predicate{PaymentType: input.PaymentType, Query: input.Query}

	raws, err := uc.records.FetchSales(ctx, r, predicate)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sales: %w", err)
	}

	records, err := analytics.NormalizeSales(raws, analytics.NormalizeContext{
		Currency: uc.settings.Currency,
		Location: uc.settings.location(),
		Now:      input.Now,
	})
	if err != nil {
		return nil, err
	}

	filtered := analytics.FilterSales(records, r, predicate)

	summary := analytics.AggregateSales(filtered, analytics.AggregateOptions{
		Names:    catalogNames(ctx, uc.catalog),
		TopN:     uc.settings.TopN,
		Location: uc.settings.location(),
	})

	return &GetSalesSummaryOutput{Range: r, Summary: summary}, nil
}

// validateRange enforces the fully bounded, strictly ordered range that
// report endpoints require.
func validateRange(start, end time.Time) (analytics.Range, error) {
	if start.IsZero() {
		return analytics.Range{}, domainerror.NewReportError(
			domainerror.ErrCodeMissingStartDate,
			"start is required",
			domainerror.ErrMissingStartDate,
		)
	}
	if end.IsZero() {
		return analytics.Range{}, domainerror.NewReportError(
			domainerror.ErrCodeMissingEndDate,
			"end is required",
			domainerror.ErrMissingEndDate,
		)
	}
	if !start.Before(end) {
		return analytics.Range{}, domainerror.NewReportError(
			domainerror.ErrCodeInvalidDateRange,
			"end must be after start",
			domainerror.ErrInvalidDateRange,
		)
	}
	return analytics.Range{Start: start, End: end}, nil
}
