// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/chrisemayers/pos-backoffice/internal/application/usecase/analytics"
	"github.com/chrisemayers/pos-backoffice/internal/application/usecase/reports"
	"github.com/chrisemayers/pos-backoffice/internal/integration/persistence/model"
)

// recordRepository implements the reports.RecordSource interface on top of
// the JSON document tables. The database does the coarse cut on the promoted
// columns; exact range and text matching stay in the analytics pipeline,
// which works on the decoded payloads.
type recordRepository struct {
	db *gorm.DB
}

// NewRecordRepository creates a new record repository instance.
func NewRecordRepository(db *gorm.DB) reports.RecordSource {
	return &recordRepository{
		db: db,
	}
}

// FetchSales retrieves the raw sale documents overlapping the given range.
func (r *recordRepository) FetchSales(ctx context.Context, rng analytics.Range, predicate analytics.Predicate) ([]analytics.RawSaleRecord, error) {
	query := r.db.WithContext(ctx).Model(&model.SaleDocumentModel{})
	if !rng.Start.IsZero() {
		query = query.Where("occurred_at >= ?", rng.Start)
	}
	if !rng.End.IsZero() {
		query = query.Where("occurred_at < ?", rng.End)
	}
	if predicate.PaymentType != "" {
		query = query.Where("payment_type = ?", predicate.PaymentType)
	}

	var models []model.SaleDocumentModel
	result := query.Order("occurred_at ASC").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	records := make([]analytics.RawSaleRecord, 0, len(models))
	for _, m := range models {
		var record analytics.RawSaleRecord
		if err := json.Unmarshal([]byte(m.Payload), &record); err != nil {
			return nil, fmt.Errorf("failed to decode sale document %s: %w", m.ID, err)
		}
		if record.ID == "" {
			record.ID = m.ID
		}
		records = append(records, record)
	}
	return records, nil
}

// FetchReturns retrieves the raw return documents overlapping the given range.
func (r *recordRepository) FetchReturns(ctx context.Context, rng analytics.Range, _ analytics.Predicate) ([]analytics.RawReturnRecord, error) {
	query := r.db.WithContext(ctx).Model(&model.ReturnDocumentModel{})
	if !rng.Start.IsZero() {
		query = query.Where("occurred_at >= ?", rng.Start)
	}
	if !rng.End.IsZero() {
		query = query.Where("occurred_at < ?", rng.End)
	}

	var models []model.ReturnDocumentModel
	result := query.Order("occurred_at ASC").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	records := make([]analytics.RawReturnRecord, 0, len(models))
	for _, m := range models {
		var record analytics.RawReturnRecord
		if err := json.Unmarshal([]byte(m.Payload), &record); err != nil {
			return nil, fmt.Errorf("failed to decode return document %s: %w", m.ID, err)
		}
		if record.ID == "" {
			record.ID = m.ID
		}
		records = append(records, record)
	}
	return records, nil
}
