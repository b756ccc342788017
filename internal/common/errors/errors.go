// internal/common/errors/errors.go
// Package errors provides standardized error handling for the credit repair
// service.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Not-found conditions. Recoverable: callers point the user at the
	// prerequisite step instead of failing hard.
	ErrCodeProfileNotFound  ErrorCode = "PROFILE_NOT_FOUND"
	ErrCodeAddressNotFound  ErrorCode = "ADDRESS_NOT_FOUND"
	ErrCodeNoDisputeHistory ErrorCode = "NO_DISPUTE_HISTORY"
	ErrCodeRecordNotFound   ErrorCode = "RECORD_NOT_FOUND"

	// Storage-shape validation. Never surfaced: tolerant reads drop the
	// record and log.
	ErrCodeRecordValidationFailed ErrorCode = "RECORD_VALIDATION_FAILED"
	ErrCodeUnknownLetterType      ErrorCode = "UNKNOWN_LETTER_TYPE"

	// External service failures.
	ErrCodeMailSendFailed      ErrorCode = "MAIL_SEND_FAILED"
	ErrCodeMailTimeout         ErrorCode = "MAIL_TIMEOUT"
	ErrCodeDatabaseQueryFailed ErrorCode = "DATABASE_QUERY_FAILED"
	ErrCodeCacheReadFailed     ErrorCode = "CACHE_READ_FAILED"
	ErrCodeCacheWriteFailed    ErrorCode = "CACHE_WRITE_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Guidance  string    `json:"guidance,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// IsCode reports whether err is a StandardError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var se *StandardError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

// IsNotFound reports whether err is any of the not-found family.
func IsNotFound(err error) bool {
	var se *StandardError
	if errors.As(err, &se) {
		return strings.HasSuffix(string(se.Code), "NOT_FOUND") || se.Code == ErrCodeNoDisputeHistory
	}
	return false
}

// NewProfileNotFoundError creates a non-retryable not-found error with intake
// guidance.
func NewProfileNotFoundError(userID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileNotFound,
		Message:   "No credit profile on file",
		Details:   fmt.Sprintf("userId: %s", userID),
		Retryable: false,
		Guidance:  "Run profile intake before requesting an audit or dispute.",
		Timestamp: time.Now().UTC(),
	}
}

// NewAddressNotFoundError creates a non-retryable error asking for the
// creditor's mailing address.
func NewAddressNotFoundError(creditorName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAddressNotFound,
		Message:   "No mailing address on file for creditor",
		Details:   fmt.Sprintf("creditor: %s", creditorName),
		Retryable: false,
		Guidance:  "Provide the creditor's mailing address to send this letter.",
		Timestamp: time.Now().UTC(),
	}
}

// NewNoDisputeHistoryError creates a non-retryable empty-history error.
func NewNoDisputeHistoryError(userID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNoDisputeHistory,
		Message:   "No disputes on record",
		Details:   fmt.Sprintf("userId: %s", userID),
		Retryable: false,
		Guidance:  "Send a dispute letter first; tracking starts at dispatch.",
		Timestamp: time.Now().UTC(),
	}
}

// NewRecordNotFoundError creates a non-retryable unknown-record error.
func NewRecordNotFoundError(recordID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecordNotFound,
		Message:   "Dispute record not found",
		Details:   fmt.Sprintf("recordId: %s", recordID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownLetterTypeError creates a non-retryable catalog-miss error.
func NewUnknownLetterTypeError(letterType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownLetterType,
		Message:   "Letter type not in catalog",
		Details:   fmt.Sprintf("letterType: %s", letterType),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMailSendFailedError wraps a non-success carrier response. The numeric
// status code is embedded in the message for caller-side branching. Never
// retried automatically: the letter is definitively not sent and a re-send
// costs money.
func NewMailSendFailedError(statusCode int, body string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMailSendFailed,
		Message:   fmt.Sprintf("Mail carrier rejected the letter (status %d)", statusCode),
		Details:   body,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMailTimeoutError creates the distinct timeout kind for dispatch calls.
func NewMailTimeoutError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMailTimeout,
		Message:   "Mail carrier request timed out",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewDatabaseQueryFailedError creates a retryable database error.
func NewDatabaseQueryFailedError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseQueryFailed,
		Message:   "Database query failed",
		Details:   fmt.Sprintf("operation: %s, error: %s", operation, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewCacheReadFailedError creates a retryable cache error.
func NewCacheReadFailedError(key string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheReadFailed,
		Message:   "Cache read failed",
		Details:   fmt.Sprintf("key: %s, error: %s", key, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewCacheWriteFailedError creates a retryable cache error.
func NewCacheWriteFailedError(key string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheWriteFailed,
		Message:   "Cache write failed",
		Details:   fmt.Sprintf("key: %s, error: %s", key, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// GetErrorCategory returns the coarse family of an error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasSuffix(codeStr, "NOT_FOUND") || code == ErrCodeNoDisputeHistory:
		return "NOT_FOUND"
	case strings.Contains(codeStr, "VALIDATION") || code == ErrCodeUnknownLetterType:
		return "VALIDATION"
	case strings.HasPrefix(codeStr, "MAIL"):
		return "EXTERNAL_SERVICE"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "CACHE"):
		return "STORAGE"
	default:
		return "OTHER"
	}
}
