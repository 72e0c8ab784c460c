// Package analytics implements the sales & returns aggregation engine.
package analytics

import (
	"errors"
	"testing"
	"time"

	domainerror "github.com/chrisemayers/pos-backoffice/internal/domain/error"
)

func floatPtr(v float64) *float64 { return &v }
func centsPtr(v int64) *int64     { return &v }

func testNormalizeContext() NormalizeContext {
	return NormalizeContext{
		Currency: "USD",
		Location: time.UTC,
		Now:      time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestNormalizeSale_Timestamps(t *testing.T) {
	nctx := testNormalizeContext()
	native := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		timestamp any
		expected  time.Time
	}{
		{
			name:      "epoch milliseconds as float",
			timestamp: float64(native.UnixMilli()),
			expected:  native,
		},
		{
			name:      "epoch milliseconds as int64",
			timestamp: native.UnixMilli(),
			expected:  native,
		},
		{
			name:      "native time value",
			timestamp: native,
			expected:  native,
		},
		{
			name:      "RFC 3339 string",
			timestamp: "2024-01-15T09:30:00Z",
			expected:  native,
		},
		{
			name:      "date-only string",
			timestamp: "2024-01-15",
			expected:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "absent falls back to injected now",
			timestamp: nil,
			expected:  nctx.Now,
		},
		{
			name:      "unintelligible string falls back to injected now",
			timestamp: "not-a-time",
			expected:  nctx.Now,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := RawSaleRecord{
				ID:         "tx-1",
				Timestamp:  tt.timestamp,
				TotalCents: centsPtr(1000),
			}

			record, err := NormalizeSale(raw, nctx)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !record.OccurredAt.Equal(tt.expected) {
				t.Errorf("expected instant %v, got %v", tt.expected, record.OccurredAt)
			}
		})
	}
}

func TestNormalizeSale_ProductKeys(t *testing.T) {
	nctx := testNormalizeContext()

	tests := []struct {
		name     string
		ref      any
		expected string
	}{
		{name: "string key passes through", ref: "sku-42", expected: "sku-42"},
		{name: "string key is trimmed", ref: "  42  ", expected: "42"},
		{name: "integral float collapses to integer form", ref: float64(42), expected: "42"},
		{name: "int collapses to the same form", ref: 42, expected: "42"},
		{name: "fractional float keeps its value", ref: 42.5, expected: "42.5"},
		{name: "absent reference yields empty key", ref: nil, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := RawSaleRecord{
				ID:         "tx-1",
				ProductRef: tt.ref,
				TotalCents: centsPtr(1000),
			}

			record, err := NormalizeSale(raw, nctx)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if record.ProductKey != tt.expected {
				t.Errorf("expected key %q, got %q", tt.expected, record.ProductKey)
			}
		})
	}

	t.Run("numeric and string forms of one product are equal", func(t *testing.T) {
		numeric, err := NormalizeSale(RawSaleRecord{ID: "a", ProductRef: float64(7), TotalCents: centsPtr(100)}, nctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		text, err := NormalizeSale(RawSaleRecord{ID: "b", ProductRef: "7", TotalCents: centsPtr(100)}, nctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if numeric.ProductKey != text.ProductKey {
			t.Errorf("expected equal keys, got %q and %q", numeric.ProductKey, text.ProductKey)
		}
	})

	t.Run("unsupported reference type is rejected", func(t *testing.T) {
		_, err := NormalizeSale(RawSaleRecord{ID: "tx-9", ProductRef: true, TotalCents: centsPtr(100)}, nctx)

		var recErr *domainerror.RecordError
		if !errors.As(err, &recErr) {
			t.Fatalf("expected RecordError, got %v", err)
		}
		if recErr.Code != domainerror.ErrCodeInvalidProductRef {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidProductRef, recErr.Code)
		}
		if recErr.Field != "productId" {
			t.Errorf("expected field productId, got %q", recErr.Field)
		}
	})
}

func TestNormalizeSale_Money(t *testing.T) {
	nctx := testNormalizeContext()

	t.Run("float only derives cents via rounding", func(t *testing.T) {
		record, err := NormalizeSale(RawSaleRecord{ID: "tx-1", Total: floatPtr(10.555)}, nctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if record.TotalCents != 1056 {
			t.Errorf("expected 1056 cents, got %d", record.TotalCents)
		}
	})

	t.Run("cents only is taken verbatim", func(t *testing.T) {
		record, err := NormalizeSale(RawSaleRecord{ID: "tx-1", TotalCents: centsPtr(3500)}, nctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if record.TotalCents != 3500 {
			t.Errorf("expected 3500 cents, got %d", record.TotalCents)
		}
		if !record.Total().Equal(mustDecimal(t, "35.00")) {
			t.Errorf("expected derived total 35.00, got %s", record.Total())
		}
	})

	t.Run("cents wins when both forms are present", func(t *testing.T) {
		record, err := NormalizeSale(RawSaleRecord{ID: "tx-1", Total: floatPtr(99.99), TotalCents: centsPtr(3500)}, nctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if record.TotalCents != 3500 {
			t.Errorf("expected authoritative 3500 cents, got %d", record.TotalCents)
		}
	})

	t.Run("missing charged amount fails fast naming record and field", func(t *testing.T) {
		_, err := NormalizeSale(RawSaleRecord{ID: "tx-broken"}, nctx)

		var recErr *domainerror.RecordError
		if !errors.As(err, &recErr) {
			t.Fatalf("expected RecordError, got %v", err)
		}
		if recErr.Code != domainerror.ErrCodeUnparsableAmount {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeUnparsableAmount, recErr.Code)
		}
		if recErr.RecordID != "tx-broken" {
			t.Errorf("expected record tx-broken, got %q", recErr.RecordID)
		}
		if recErr.Field != "total" {
			t.Errorf("expected field total, got %q", recErr.Field)
		}
	})

	t.Run("optional amounts default to zero when absent", func(t *testing.T) {
		record, err := NormalizeSale(RawSaleRecord{ID: "tx-1", TotalCents: centsPtr(100)}, nctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if record.DiscountCents != 0 || record.ChangeDueCents != 0 {
			t.Errorf("expected zero optional amounts, got discount=%d changeDue=%d",
				record.DiscountCents, record.ChangeDueCents)
		}
	})
}

func TestNormalizeSale_Quantity(t *testing.T) {
	nctx := testNormalizeContext()

	t.Run("negative quantity is rejected", func(t *testing.T) {
		_, err := NormalizeSale(RawSaleRecord{ID: "tx-1", Quantity: floatPtr(-1), TotalCents: centsPtr(100)}, nctx)

		var recErr *domainerror.RecordError
		if !errors.As(err, &recErr) {
			t.Fatalf("expected RecordError, got %v", err)
		}
		if recErr.Field != "quantity" {
			t.Errorf("expected field quantity, got %q", recErr.Field)
		}
	})

	t.Run("absent quantity normalizes to zero", func(t *testing.T) {
		record, err := NormalizeSale(RawSaleRecord{ID: "tx-1", TotalCents: centsPtr(100)}, nctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if record.Quantity != 0 {
			t.Errorf("expected quantity 0, got %d", record.Quantity)
		}
	})
}

func TestNormalizeSale_CurrencyFallback(t *testing.T) {
	nctx := testNormalizeContext()

	record, err := NormalizeSale(RawSaleRecord{ID: "tx-1", TotalCents: centsPtr(100)}, nctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Currency != "USD" {
		t.Errorf("expected fallback currency USD, got %q", record.Currency)
	}

	record, err = NormalizeSale(RawSaleRecord{ID: "tx-2", TotalCents: centsPtr(100), Currency: "EUR"}, nctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Currency != "EUR" {
		t.Errorf("expected record currency EUR, got %q", record.Currency)
	}
}

func TestNormalizeReturn(t *testing.T) {
	nctx := testNormalizeContext()

	t.Run("normalizes amounts, items and instant", func(t *testing.T) {
		raw := RawReturnRecord{
			ID:        "ret-1",
			SaleID:    "tx-1",
			Timestamp: "2024-01-16T08:00:00Z",
			Refund:    floatPtr(12.34),
			Items: []RawReturnLine{
				{ProductRef: float64(7), Quantity: floatPtr(2)},
				{ProductRef: "sku-9", Quantity: floatPtr(1)},
			},
		}

		record, err := NormalizeReturn(raw, nctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if record.RefundCents != 1234 {
			t.Errorf("expected 1234 refund cents, got %d", record.RefundCents)
		}
		if len(record.Items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(record.Items))
		}
		if record.Items[0].ProductKey != "7" || record.Items[0].Quantity != 2 {
			t.Errorf("unexpected first item: %+v", record.Items[0])
		}
	})

	t.Run("missing refund amount fails fast", func(t *testing.T) {
		_, err := NormalizeReturn(RawReturnRecord{ID: "ret-2", SaleID: "tx-1"}, nctx)

		var recErr *domainerror.RecordError
		if !errors.As(err, &recErr) {
			t.Fatalf("expected RecordError, got %v", err)
		}
		if recErr.Field != "refundAmount" {
			t.Errorf("expected field refundAmount, got %q", recErr.Field)
		}
	})

	t.Run("malformed item names its position", func(t *testing.T) {
		raw := RawReturnRecord{
			ID:          "ret-3",
			RefundCents: centsPtr(100),
			Items:       []RawReturnLine{{ProductRef: "ok"}, {ProductRef: true}},
		}

		_, err := NormalizeReturn(raw, nctx)

		var recErr *domainerror.RecordError
		if !errors.As(err, &recErr) {
			t.Fatalf("expected RecordError, got %v", err)
		}
		if recErr.Field != "items[1].productId" {
			t.Errorf("expected field items[1].productId, got %q", recErr.Field)
		}
	})
}

func TestNormalizeSales_StopsAtFirstMalformedRecord(t *testing.T) {
	nctx := testNormalizeContext()
	raws := []RawSaleRecord{
		{ID: "tx-1", TotalCents: centsPtr(100)},
		{ID: "tx-2"},
		{ID: "tx-3", TotalCents: centsPtr(300)},
	}

	_, err := NormalizeSales(raws, nctx)

	var recErr *domainerror.RecordError
	if !errors.As(err, &recErr) {
		t.Fatalf("expected RecordError, got %v", err)
	}
	if recErr.RecordID != "tx-2" {
		t.Errorf("expected failure on tx-2, got %q", recErr.RecordID)
	}
}
