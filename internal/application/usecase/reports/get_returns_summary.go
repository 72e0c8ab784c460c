// Package reports contains report-related use cases.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/chrisemayers/pos-backoffice/internal/application/usecase/analytics"
)

// GetReturnsSummaryInput represents the input for building a returns summary.
type GetReturnsSummaryInput struct {
	Start time.Time
	End   time.Time
	Query string
	Now   time.Time
}

// GetReturnsSummaryOutput represents the output of building a returns summary.
type GetReturnsSummaryOutput struct {
	Range   analytics.Range
	Summary analytics.ReturnsSummary
}

// GetReturnsSummaryUseCase aggregates the returns of one time range.
type GetReturnsSummaryUseCase struct {
	records  RecordSource
	settings Settings
}

// NewGetReturnsSummaryUseCase creates a new GetReturnsSummaryUseCase instance.
func NewGetReturnsSummaryUseCase(records RecordSource, settings Settings) *GetReturnsSummaryUseCase {
	return &GetReturnsSummaryUseCase{
		records:  records,
		settings: settings,
	}
}

// Execute fetches the raw returns, normalizes them, applies the range filter
// and aggregates the result.
func (uc *GetReturnsSummaryUseCase) Execute(
	ctx context.Context,
	input GetReturnsSummaryInput,
) (*GetReturnsSummaryOutput, error) {
	r, err := validateRange(input.Start, input.End)
	if err != nil {
		return nil, err
	}

	predicate := analytics.Predicate{Query: input.Query}

	raws, err := uc.records.FetchReturns(ctx, r, predicate)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch returns: %w", err)
	}

	records, err := analytics.NormalizeReturns(raws, analytics.NormalizeContext{
		Currency: uc.settings.Currency,
		Location: uc.settings.location(),
		Now:      input.Now,
	})
	if err != nil {
		return nil, err
	}

	filtered := analytics.FilterReturns(records, r, predicate)

	return &GetReturnsSummaryOutput{Range: r, Summary: analytics.AggregateReturns(filtered)}, nil
}
