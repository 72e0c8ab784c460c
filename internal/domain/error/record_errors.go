// Package error defines domain-specific errors for the POS back-office application.
package error

import "errors"

// Record normalization domain errors.
var (
	// ErrUnparsableAmount is returned when a record carries a monetary amount
	// that cannot be interpreted. This is the one normalization failure that
	// aborts aggregation: silently treating the amount as zero would corrupt
	// totals undetectably.
	ErrUnparsableAmount = errors.New("unparsable monetary amount")

	// ErrInvalidQuantity is returned when a record's quantity is negative.
	ErrInvalidQuantity = errors.New("quantity must not be negative")

	// ErrInvalidProductRef is returned when a product reference has a type
	// that cannot be collapsed to a catalog key.
	ErrInvalidProductRef = errors.New("invalid product reference")
)

// RecordErrorCode defines error codes for record normalization errors.
// Format: REC-XXYYYY where XX is category and YYYY is specific error.
type RecordErrorCode string

const (
	// Malformed-record errors (01XXXX)
	ErrCodeUnparsableAmount  RecordErrorCode = "REC-010001"
	ErrCodeInvalidQuantity   RecordErrorCode = "REC-010002"
	ErrCodeInvalidProductRef RecordErrorCode = "REC-010003"
)

// RecordError represents a malformed raw record. It names the record and the
// offending field so upstream writers can be pointed at the dirty document.
type RecordError struct {
	Code     RecordErrorCode
	RecordID string
	Field    string
	Err      error
}

// Error implements the error interface.
func (e *RecordError) Error() string {
	msg := "malformed record"
	if e.RecordID != "" {
		msg += " " + e.RecordID
	}
	if e.Field != "" {
		msg += ": field " + e.Field
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *RecordError) Unwrap() error {
	return e.Err
}

// NewRecordError creates a new RecordError for the given record and field.
func NewRecordError(code RecordErrorCode, recordID, field string, err error) *RecordError {
	return &RecordError{
		Code:     code,
		RecordID: recordID,
		Field:    field,
		Err:      err,
	}
}
