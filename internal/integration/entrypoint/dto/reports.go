// Package dto defines data transfer objects for the API endpoints.
package dto

import (
	"time"

	"github.com/chrisemayers/pos-backoffice/internal/application/usecase/analytics"
)

// TopProductResponse is one row of the per-product ranking.
type TopProductResponse struct {
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	QuantitySold int64   `json:"quantitySold"`
	Revenue      float64 `json:"revenue"`
}

// DailyRevenueResponse is one point of the daily revenue series.
type DailyRevenueResponse struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

// SalesReportResponse represents the sales summary payload.
type SalesReportResponse struct {
	StartDate         string                 `json:"startDate"`
	EndDate           string                 `json:"endDate"`
	TotalSales        int                    `json:"totalSales"`
	TotalRevenue      float64                `json:"totalRevenue"`
	AverageOrderValue float64                `json:"averageOrderValue"`
	TopProducts       []TopProductResponse   `json:"topProducts"`
	DailyRevenue      []DailyRevenueResponse `json:"dailyRevenue"`
	ByPaymentType     map[string]int         `json:"byPaymentType"`
}

// ReturnsReportResponse represents the returns summary payload.
type ReturnsReportResponse struct {
	StartDate          string  `json:"startDate"`
	EndDate            string  `json:"endDate"`
	TotalReturns       int     `json:"totalReturns"`
	TotalRefunded      float64 `json:"totalRefunded"`
	TotalItemsReturned int64   `json:"totalItemsReturned"`
}

// ChangesResponse carries the three period-over-period percentages. A zero
// can mean either no change or no previous data; the masking convention is
// part of the contract.
type ChangesResponse struct {
	Revenue           float64 `json:"revenue"`
	TotalSales        float64 `json:"totalSales"`
	AverageOrderValue float64 `json:"averageOrderValue"`
}

// ComparisonReportResponse represents the period comparison payload.
type ComparisonReportResponse struct {
	Current  SalesReportResponse `json:"current"`
	Previous SalesReportResponse `json:"previous"`
	Changes  ChangesResponse     `json:"changes"`
}

// ToSalesReportResponse converts an aggregated summary to its payload form.
func ToSalesReportResponse(r analytics.Range, summary analytics.SalesSummary) SalesReportResponse {
	topProducts := make([]TopProductResponse, 0, len(summary.TopProducts))
	for _, p := range summary.TopProducts {
		topProducts = append(topProducts, TopProductResponse{
			ProductID:    p.ProductKey,
			ProductName:  p.ProductName,
			QuantitySold: p.Quantity,
			Revenue:      p.Revenue().InexactFloat64(),
		})
	}

	dailyRevenue := make([]DailyRevenueResponse, 0, len(summary.DailyRevenue))
	for _, p := range summary.DailyRevenue {
		dailyRevenue = append(dailyRevenue, DailyRevenueResponse{
			Date:    p.Date,
			Revenue: p.Revenue().InexactFloat64(),
		})
	}

	return SalesReportResponse{
		StartDate:         r.Start.Format(time.RFC3339),
		EndDate:           r.End.Format(time.RFC3339),
		TotalSales:        summary.TotalSales,
		TotalRevenue:      summary.TotalRevenue().InexactFloat64(),
		AverageOrderValue: summary.AverageOrderValue().InexactFloat64(),
		TopProducts:       topProducts,
		DailyRevenue:      dailyRevenue,
		ByPaymentType:     summary.ByPaymentType,
	}
}

// ToReturnsReportResponse converts an aggregated returns summary to its
// payload form.
func ToReturnsReportResponse(r analytics.Range, summary analytics.ReturnsSummary) ReturnsReportResponse {
	return ReturnsReportResponse{
		StartDate:          r.Start.Format(time.RFC3339),
		EndDate:            r.End.Format(time.RFC3339),
		TotalReturns:       summary.TotalReturns,
		TotalRefunded:      summary.TotalRefunded().InexactFloat64(),
		TotalItemsReturned: summary.TotalItemsReturned,
	}
}

// ToComparisonReportResponse converts a comparison report to its payload form.
func ToComparisonReportResponse(current, previous analytics.Range, report analytics.ComparisonReport) ComparisonReportResponse {
	return ComparisonReportResponse{
		Current:  ToSalesReportResponse(current, report.Current),
		Previous: ToSalesReportResponse(previous, report.Previous),
		Changes: ChangesResponse{
			Revenue:           report.Changes.Revenue.InexactFloat64(),
			TotalSales:        report.Changes.Sales.InexactFloat64(),
			AverageOrderValue: report.Changes.AverageOrderValue.InexactFloat64(),
		},
	}
}
