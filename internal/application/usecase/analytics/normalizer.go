// Package analytics implements the sales & returns aggregation engine: raw
// record normalization, range filtering, summary aggregation, period
// comparison and date-range calculation. Every function in this package is a
// pure transform of its arguments; given the same inputs it produces
// bit-identical output, performs no I/O and reads no global clock.
package analytics

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/chrisemayers/pos-backoffice/internal/domain/entity"
	domainerror "github.com/chrisemayers/pos-backoffice/internal/domain/error"
)

// RawSaleRecord mirrors a transaction document as stored upstream. The store
// was written by several generations of clients, so fields are loosely typed:
// timestamps arrive as epoch milliseconds, native times, RFC 3339 strings or
// not at all, product references may be numbers or strings, and money may be
// present as a float amount, integer cents, or both.
type RawSaleRecord struct {
	ID             string   `json:"id"`
	ReceiptID      string   `json:"receiptId"`
	ProductRef     any      `json:"productId"`
	Category       string   `json:"category"`
	Barcode        string   `json:"barcode"`
	Quantity       *float64 `json:"quantity"`
	Timestamp      any      `json:"timestamp"`
	PaymentType    string   `json:"paymentType"`
	Total          *float64 `json:"total"`
	TotalCents     *int64   `json:"totalCents"`
	Discount       *float64 `json:"discount"`
	DiscountCents  *int64   `json:"discountCents"`
	ChangeDue      *float64 `json:"changeDue"`
	ChangeDueCents *int64   `json:"changeDueCents"`
	GatewayRef     string   `json:"gatewayTransactionId"`
	Currency       string   `json:"currency"`
}

// RawReturnLine is a single line item of a raw return document.
type RawReturnLine struct {
	ProductRef any      `json:"productId"`
	Quantity   *float64 `json:"quantity"`
}

// RawReturnRecord mirrors a return document as stored upstream.
type RawReturnRecord struct {
	ID               string          `json:"id"`
	SaleID           string          `json:"transactionId"`
	Timestamp        any             `json:"timestamp"`
	Refund           *float64        `json:"refundAmount"`
	RefundCents      *int64          `json:"refundCents"`
	GatewayRefundRef string          `json:"gatewayRefundId"`
	Items            []RawReturnLine `json:"items"`
	Currency         string          `json:"currency"`
}

// NormalizeContext carries the tenant defaults and the injected clock that
// normalization depends on. Threading it explicitly keeps normalization
// deterministic and unit-testable.
type NormalizeContext struct {
	Currency string
	Location *time.Location
	Now      time.Time
}

func (c NormalizeContext) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

func (c NormalizeContext) now() time.Time {
	// Last resort for callers that did not thread a clock.
	if c.Now.IsZero() {
		return time.Now().In(c.location())
	}
	return c.Now.In(c.location())
}

// ProductKeyOf collapses a numeric-or-string product reference to a single
// canonical string key. Integral numbers lose their fraction-free notation
// ("42.0" becomes "42") so that a catalog entry written with a numeric ID and
// a sale written with the string form land on the same key. The catalog side
// must normalize with the same function for lookups to line up.
func ProductKeyOf(ref any) (string, error) {
	switch v := ref.(type) {
	case nil:
		return "", nil
	case string:
		return strings.TrimSpace(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "", fmt.Errorf("non-finite product reference %v", v)
		}
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10), nil
		}
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case json.Number:
		return ProductKeyOf(string(v))
	default:
		return "", fmt.Errorf("unsupported product reference type %T", ref)
	}
}

// instantOf interprets the loosely typed timestamp encodings found in the
// store. Absent or unintelligible instants normalize to the fallback, a
// documented lossy choice: partially written records must never abort
// aggregation.
func instantOf(ts any, fallback time.Time, loc *time.Location) time.Time {
	switch v := ts.(type) {
	case time.Time:
		return v.In(loc)
	case *time.Time:
		if v == nil {
			return fallback
		}
		return v.In(loc)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fallback
		}
		return time.UnixMilli(int64(v)).In(loc)
	case int64:
		return time.UnixMilli(v).In(loc)
	case int:
		return time.UnixMilli(int64(v)).In(loc)
	case json.Number:
		if millis, err := v.Int64(); err == nil {
			return time.UnixMilli(millis).In(loc)
		}
		return fallback
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t.In(loc)
		}
		if t, err := time.ParseInLocation(dayKeyFormat, v, loc); err == nil {
			return t
		}
		return fallback
	default:
		return fallback
	}
}

// centsOf derives authoritative integer cents from whichever monetary
// representation is present. When both are present the cents value wins; the
// two are never averaged or blended. The float form, when it is all we have,
// is rounded with round(amount*100).
func centsOf(amount *float64, cents *int64) (value int64, present, ok bool) {
	if cents != nil {
		return *cents, true, true
	}
	if amount != nil {
		if math.IsNaN(*amount) || math.IsInf(*amount, 0) {
			return 0, true, false
		}
		return int64(math.Round(*amount * 100)), true, true
	}
	return 0, false, true
}

// NormalizeSale converts one raw transaction document into its canonical
// form. The only hard failures are monetary: a record whose charged amount
// cannot be interpreted is rejected with a RecordError naming the field,
// because silently treating it as zero would corrupt totals undetectably.
// Missing timestamps fall back to the injected now.
func NormalizeSale(raw RawSaleRecord, nctx NormalizeContext) (entity.SaleRecord, error) {
	loc := nctx.location()
	now := nctx.now()

	key, err := ProductKeyOf(raw.ProductRef)
	if err != nil {
		return entity.SaleRecord{}, domainerror.NewRecordError(
			domainerror.ErrCodeInvalidProductRef, raw.ID, "productId", err)
	}

	var quantity int64
	if raw.Quantity != nil {
		if *raw.Quantity < 0 {
			return entity.SaleRecord{}, domainerror.NewRecordError(
				domainerror.ErrCodeInvalidQuantity, raw.ID, "quantity", domainerror.ErrInvalidQuantity)
		}
		quantity = int64(math.Round(*raw.Quantity))
	}

	totalCents, totalPresent, totalOK := centsOf(raw.Total, raw.TotalCents)
	if !totalOK || !totalPresent {
		return entity.SaleRecord{}, domainerror.NewRecordError(
			domainerror.ErrCodeUnparsableAmount, raw.ID, "total", domainerror.ErrUnparsableAmount)
	}

	discountCents, _, discountOK := centsOf(raw.Discount, raw.DiscountCents)
	if !discountOK {
		return entity.SaleRecord{}, domainerror.NewRecordError(
			domainerror.ErrCodeUnparsableAmount, raw.ID, "discount", domainerror.ErrUnparsableAmount)
	}

	changeDueCents, _, changeOK := centsOf(raw.ChangeDue, raw.ChangeDueCents)
	if !changeOK {
		return entity.SaleRecord{}, domainerror.NewRecordError(
			domainerror.ErrCodeUnparsableAmount, raw.ID, "changeDue", domainerror.ErrUnparsableAmount)
	}

	currency := raw.Currency
	if currency == "" {
		currency = nctx.Currency
	}

	return entity.SaleRecord{
		ID:              raw.ID,
		ReceiptID:       raw.ReceiptID,
		ProductKey:      key,
		ProductCategory: raw.Category,
		Barcode:         raw.Barcode,
		Quantity:        quantity,
		OccurredAt:      instantOf(raw.Timestamp, now, loc),
		PaymentType:     raw.PaymentType,
		TotalCents:      totalCents,
		DiscountCents:   discountCents,
		ChangeDueCents:  changeDueCents,
		GatewayRef:      raw.GatewayRef,
		Currency:        currency,
	}, nil
}

// NormalizeSales normalizes a batch, failing on the first malformed record.
func NormalizeSales(raws []RawSaleRecord, nctx NormalizeContext) ([]entity.SaleRecord, error) {
	records := make([]entity.SaleRecord, 0, len(raws))
	for _, raw := range raws {
		record, err := NormalizeSale(raw, nctx)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// NormalizeReturn converts one raw return document into its canonical form
// under the same rules as NormalizeSale.
func NormalizeReturn(raw RawReturnRecord, nctx NormalizeContext) (entity.ReturnRecord, error) {
	loc := nctx.location()
	now := nctx.now()

	refundCents, refundPresent, refundOK := centsOf(raw.Refund, raw.RefundCents)
	if !refundOK || !refundPresent {
		return entity.ReturnRecord{}, domainerror.NewRecordError(
			domainerror.ErrCodeUnparsableAmount, raw.ID, "refundAmount", domainerror.ErrUnparsableAmount)
	}

	items := make([]entity.ReturnLine, 0, len(raw.Items))
	for i, line := range raw.Items {
		key, err := ProductKeyOf(line.ProductRef)
		if err != nil {
			return entity.ReturnRecord{}, domainerror.NewRecordError(
				domainerror.ErrCodeInvalidProductRef, raw.ID, fmt.Sprintf("items[%d].productId", i), err)
		}
		var quantity int64
		if line.Quantity != nil {
			if *line.Quantity < 0 {
				return entity.ReturnRecord{}, domainerror.NewRecordError(
					domainerror.ErrCodeInvalidQuantity, raw.ID, fmt.Sprintf("items[%d].quantity", i), domainerror.ErrInvalidQuantity)
			}
			quantity = int64(math.Round(*line.Quantity))
		}
		items = append(items, entity.ReturnLine{ProductKey: key, Quantity: quantity})
	}

	currency := raw.Currency
	if currency == "" {
		currency = nctx.Currency
	}

	return entity.ReturnRecord{
		ID:               raw.ID,
		SaleID:           raw.SaleID,
		OccurredAt:       instantOf(raw.Timestamp, now, loc),
		RefundCents:      refundCents,
		GatewayRefundRef: raw.GatewayRefundRef,
		Items:            items,
		Currency:         currency,
	}, nil
}

// NormalizeReturns normalizes a batch, failing on the first malformed record.
func NormalizeReturns(raws []RawReturnRecord, nctx NormalizeContext) ([]entity.ReturnRecord, error) {
	records := make([]entity.ReturnRecord, 0, len(raws))
	for _, raw := range raws {
		record, err := NormalizeReturn(raw, nctx)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
