package analytics

import (
	"strings"
	"time"

	"github.com/chrisemayers/pos-backoffice/internal/domain/entity"
)

// Range is a half-open time interval [Start, End). A zero bound means the
// interval is unbounded on that side.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether ts falls inside the interval.
func (r Range) Contains(ts time.Time) bool {
	if !r.Start.IsZero() && ts.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && !ts.Before(r.End) {
		return false
	}
	return true
}

// Duration returns End-Start for a fully bounded range, zero otherwise.
func (r Range) Duration() time.Duration {
	if r.Start.IsZero() || r.End.IsZero() {
		return 0
	}
	return r.End.Sub(r.Start)
}

// Predicate narrows a filtered set beyond the time range. PaymentType matches
// the tag exactly (case-sensitive); Query matches case-insensitively against
// the receipt identifier, product category and barcode.
type Predicate struct {
	PaymentType string
	Query       string
}

// IsZero reports whether the predicate imposes no constraint.
func (p Predicate) IsZero() bool {
	return p.PaymentType == "" && p.Query == ""
}

func (p Predicate) matchesSale(rec entity.SaleRecord) bool {
	if p.PaymentType != "" && rec.PaymentType != p.PaymentType {
		return false
	}
	if p.Query != "" {
		q := strings.ToLower(p.Query)
		if !strings.Contains(strings.ToLower(rec.ReceiptID), q) &&
			!strings.Contains(strings.ToLower(rec.ProductCategory), q) &&
			!strings.Contains(strings.ToLower(rec.Barcode), q) {
			return false
		}
	}
	return true
}

func (p Predicate) matchesReturn(rec entity.ReturnRecord) bool {
	if p.Query != "" {
		q := strings.ToLower(p.Query)
		if !strings.Contains(strings.ToLower(rec.ID), q) &&
			!strings.Contains(strings.ToLower(rec.SaleID), q) &&
			!strings.Contains(strings.ToLower(rec.GatewayRefundRef), q) {
			return false
		}
	}
	return true
}

// FilterSales selects the records whose instant falls in r and that match p.
// The input slice is never mutated and filtering is idempotent: re-filtering
// an already filtered set with a superset range reproduces the same result.
func FilterSales(records []entity.SaleRecord, r Range, p Predicate) []entity.SaleRecord {
	filtered := make([]entity.SaleRecord, 0, len(records))
	for _, rec := range records {
		if !r.Contains(rec.OccurredAt) {
			continue
		}
		if !p.matchesSale(rec) {
			continue
		}
		filtered = append(filtered, rec)
	}
	return filtered
}

// FilterReturns is FilterSales for return records. Returns carry no payment
// tag, so only the range and the text query apply.
func FilterReturns(records []entity.ReturnRecord, r Range, p Predicate) []entity.ReturnRecord {
	filtered := make([]entity.ReturnRecord, 0, len(records))
	for _, rec := range records {
		if !r.Contains(rec.OccurredAt) {
			continue
		}
		if !p.matchesReturn(rec) {
			continue
		}
		filtered = append(filtered, rec)
	}
	return filtered
}
