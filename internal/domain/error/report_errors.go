// Package error defines domain-specific errors for the POS back-office application.
package error

import "errors"

// Report domain errors.
var (
	// ErrMissingStartDate is returned when start is not provided.
	ErrMissingStartDate = errors.New("start is required")

	// ErrMissingEndDate is returned when end is not provided.
	ErrMissingEndDate = errors.New("end is required")

	// ErrInvalidDateRange is returned when end is not after start.
	ErrInvalidDateRange = errors.New("end must be after start")

	// ErrInvalidPeriod is returned when a named period token is unknown.
	ErrInvalidPeriod = errors.New("unknown period, expected one of: today, this_week, last_week, this_month, last_month, last_7_days, last_30_days")

	// ErrInvalidDateFormat is returned when a date parameter cannot be parsed.
	ErrInvalidDateFormat = errors.New("invalid date format, expected RFC 3339 or YYYY-MM-DD")
)

// ReportErrorCode defines error codes for report errors.
// Format: RPT-XXYYYY where XX is category and YYYY is specific error.
type ReportErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingStartDate  ReportErrorCode = "RPT-010001"
	ErrCodeMissingEndDate    ReportErrorCode = "RPT-010002"
	ErrCodeInvalidDateRange  ReportErrorCode = "RPT-010003"
	ErrCodeInvalidPeriod     ReportErrorCode = "RPT-010004"
	ErrCodeInvalidDateFormat ReportErrorCode = "RPT-010005"

	// Internal errors (99XXXX)
	ErrCodeReportInternalError ReportErrorCode = "RPT-990001"
)

// ReportError represents a report error with code and message.
type ReportError struct {
	Code    ReportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError creates a new ReportError with the given code and message.
func NewReportError(code ReportErrorCode, message string, err error) *ReportError {
	return &ReportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
