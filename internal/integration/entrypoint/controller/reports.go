// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chrisemayers/pos-backoffice/internal/application/usecase/analytics"
	"github.com/chrisemayers/pos-backoffice/internal/application/usecase/reports"
	domainerror "github.com/chrisemayers/pos-backoffice/internal/domain/error"
	"github.com/chrisemayers/pos-backoffice/internal/integration/entrypoint/dto"
)

const dateParamLayout = "2006-01-02"

// ReportsController handles the report endpoints.
type ReportsController struct {
	getSalesSummaryUseCase   *reports.GetSalesSummaryUseCase
	getReturnsSummaryUseCase *reports.GetReturnsSummaryUseCase
	comparePeriodsUseCase    *reports.ComparePeriodsUseCase
	location                 *time.Location
	now                      func() time.Time
}

// NewReportsController creates a new reports controller instance.
func NewReportsController(
	getSalesSummaryUseCase *reports.GetSalesSummaryUseCase,
	getReturnsSummaryUseCase *reports.GetReturnsSummaryUseCase,
	comparePeriodsUseCase *reports.ComparePeriodsUseCase,
	location *time.Location,
) *ReportsController {
	if location == nil {
		location = time.UTC
	}
	return &ReportsController{
		getSalesSummaryUseCase:   getSalesSummaryUseCase,
		getReturnsSummaryUseCase: getReturnsSummaryUseCase,
		comparePeriodsUseCase:    comparePeriodsUseCase,
		location:                 location,
		now:                      time.Now,
	}
}

// SetClock overrides the time source used to resolve named periods. Used by
// the integration harness to pin "today".
func (rc *ReportsController) SetClock(now func() time.Time) {
	if now != nil {
		rc.now = now
	}
}

// GetSalesReport handles GET /api/v1/reports/sales requests. The range comes
// either from a named period or from an inclusive start_date/end_date pair.
func (rc *ReportsController) GetSalesReport(ctx *gin.Context) {
	now := rc.now().In(rc.location)

	r, ok := rc.resolveRange(ctx, now)
	if !ok {
		return
	}

	output, err := rc.getSalesSummaryUseCase.Execute(ctx.Request.Context(), reports.GetSalesSummaryInput{
		Start:       r.Start,
		End:         r.End,
		PaymentType: ctx.Query("payment_type"),
		Query:       ctx.Query("q"),
		Now:         now,
	})
	if err != nil {
		respondReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSalesReportResponse(output.Range, output.Summary))
}

// GetReturnsReport handles GET /api/v1/reports/returns requests.
func (rc *ReportsController) GetReturnsReport(ctx *gin.Context) {
	now := rc.now().In(rc.location)

	r, ok := rc.resolveRange(ctx, now)
	if !ok {
		return
	}

	output, err := rc.getReturnsSummaryUseCase.Execute(ctx.Request.Context(), reports.GetReturnsSummaryInput{
		Start: r.Start,
		End:   r.End,
		Query: ctx.Query("q"),
		Now:   now,
	})
	if err != nil {
		respondReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReturnsReportResponse(output.Range, output.Summary))
}

// GetComparisonReport handles GET /api/v1/reports/comparison requests. A
// named period yields its calendar twin as the previous range; an explicit
// date pair is compared against the same-length window ending at its start.
func (rc *ReportsController) GetComparisonReport(ctx *gin.Context) {
	now := rc.now().In(rc.location)

	var current, previous analytics.Range
	if period := ctx.Query("period"); period != "" {
		var err error
		current, previous, err = analytics.ComparisonRanges(period, now)
		if err != nil {
			respondReportError(ctx, err)
			return
		}
	} else {
		r, ok := rc.parseDateRange(ctx)
		if !ok {
			return
		}
		current = r
		previous = analytics.PreviousRange(r)
	}

	output, err := rc.comparePeriodsUseCase.Execute(ctx.Request.Context(), reports.ComparePeriodsInput{
		Current:     current,
		Previous:    previous,
		PaymentType: ctx.Query("payment_type"),
		Query:       ctx.Query("q"),
		Now:         now,
	})
	if err != nil {
		respondReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToComparisonReportResponse(output.CurrentRange, output.PreviousRange, output.Report))
}

// resolveRange reads either a named period or an explicit date pair. On
// failure the error response is already written and false is returned.
func (rc *ReportsController) resolveRange(ctx *gin.Context, now time.Time) (analytics.Range, bool) {
	if period := ctx.Query("period"); period != "" {
		r, err := analytics.NamedRange(period, now)
		if err != nil {
			respondReportError(ctx, err)
			return analytics.Range{}, false
		}
		return r, true
	}
	return rc.parseDateRange(ctx)
}

// parseDateRange parses the inclusive start_date/end_date pair into the
// half-open range the engine works with.
func (rc *ReportsController) parseDateRange(ctx *gin.Context) (analytics.Range, bool) {
	startStr := ctx.Query("start_date")
	endStr := ctx.Query("end_date")

	if startStr == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "start_date is required",
			Code:  string(domainerror.ErrCodeMissingStartDate),
		})
		return analytics.Range{}, false
	}
	if endStr == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "end_date is required",
			Code:  string(domainerror.ErrCodeMissingEndDate),
		})
		return analytics.Range{}, false
	}

	start, err := time.ParseInLocation(dateParamLayout, startStr, rc.location)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid start_date format, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidDateFormat),
		})
		return analytics.Range{}, false
	}
	end, err := time.ParseInLocation(dateParamLayout, endStr, rc.location)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid end_date format, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidDateFormat),
		})
		return analytics.Range{}, false
	}

	// end_date is inclusive at the API surface.
	return analytics.Range{Start: start, End: end.AddDate(0, 0, 1)}, true
}

// respondReportError maps domain errors to HTTP responses.
func respondReportError(ctx *gin.Context, err error) {
	if errors.Is(err, domainerror.ErrInvalidPeriod) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: domainerror.ErrInvalidPeriod.Error(),
			Code:  string(domainerror.ErrCodeInvalidPeriod),
		})
		return
	}

	var reportErr *domainerror.ReportError
	if errors.As(err, &reportErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: reportErr.Message,
			Code:  string(reportErr.Code),
		})
		return
	}

	var recordErr *domainerror.RecordError
	if errors.As(err, &recordErr) {
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error:   "Stored record could not be normalized",
			Code:    string(recordErr.Code),
			Details: recordErr.Error(),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "Failed to build report",
		Code:  string(domainerror.ErrCodeReportInternalError),
	})
}
