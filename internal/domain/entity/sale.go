// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRecord is the canonical form of a point-of-sale transaction after
// normalization. Monetary values are stored in integer minor units (cents);
// the cents value is authoritative and decimal amounts are always derived
// from it, never the reverse, so float drift cannot accumulate across
// aggregation.
type SaleRecord struct {
	ID              string
	ReceiptID       string
	ProductKey      string // canonical catalog key, see analytics.ProductKeyOf
	ProductCategory string
	Barcode         string
	Quantity        int64
	OccurredAt      time.Time
	PaymentType     string // free-form tag, unknown values pass through verbatim
	TotalCents      int64  // amount actually charged, post-discount
	DiscountCents   int64
	ChangeDueCents  int64
	GatewayRef      string // optional external-gateway transaction reference
	Currency        string
}

// Total returns the charged amount as a decimal derived from cents.
func (r SaleRecord) Total() decimal.Decimal {
	return decimal.New(r.TotalCents, -2)
}

// Discount returns the discount amount as a decimal derived from cents.
func (r SaleRecord) Discount() decimal.Decimal {
	return decimal.New(r.DiscountCents, -2)
}

// ReturnLine is a single returned item within a return record.
type ReturnLine struct {
	ProductKey string
	Quantity   int64
}

// ReturnRecord is the canonical form of a return/refund event, referencing
// the sale it reverses.
type ReturnRecord struct {
	ID               string
	SaleID           string
	OccurredAt       time.Time
	RefundCents      int64
	GatewayRefundRef string
	Items            []ReturnLine
	Currency         string
}

// Refunded returns the refunded amount as a decimal derived from cents.
func (r ReturnRecord) Refunded() decimal.Decimal {
	return decimal.New(r.RefundCents, -2)
}
