// Package errors provides standardized error handling for the resolution pipeline.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Resolver / upstream errors
	ErrCodeTransport         ErrorCode = "TRANSPORT_ERROR"
	ErrCodeUpstreamStatus    ErrorCode = "UPSTREAM_STATUS_ERROR"
	ErrCodeMalformedResponse ErrorCode = "MALFORMED_RESPONSE"
	ErrCodeNotServiceable    ErrorCode = "NOT_SERVICEABLE"

	// Catalog outcomes
	ErrCodeProductNotFound ErrorCode = "PRODUCT_NOT_FOUND"

	// Collaborator errors
	ErrCodeGeocodeFailed   ErrorCode = "GEOCODE_FAILED"
	ErrCodeSinkWriteFailed ErrorCode = "SINK_WRITE_FAILED"
	ErrCodeInvalidInput    ErrorCode = "INVALID_INPUT"
)

// Sentinel values used by resolvers for errors.Is classification.
var (
	ErrTransport         = errors.New("TRANSPORT_ERROR")
	ErrUpstreamStatus    = errors.New("UPSTREAM_STATUS_ERROR")
	ErrMalformedResponse = errors.New("MALFORMED_RESPONSE")
	ErrNotServiceable    = errors.New("NOT_SERVICEABLE")
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewTransportError creates a retryable network/timeout error.
func NewTransportError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTransport,
		Message:   "Upstream request failed in transport",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamStatusError creates a retryable non-2xx status error.
func NewUpstreamStatusError(statusCode int) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamStatus,
		Message:   "Upstream returned unexpected status",
		Details:   fmt.Sprintf("statusCode: %d", statusCode),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewMalformedResponseError creates a retryable body-shape error.
func NewMalformedResponseError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedResponse,
		Message:   "Upstream response body not in expected shape",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotServiceableError creates a retryable empty-serviceability error.
// Serviceability omissions are frequently transient rate-limit responses,
// so they stay inside the resolver retry budget.
func NewNotServiceableError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotServiceable,
		Message:   "Location not serviceable by any store",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProductNotFoundError marks a confirmed-absent SKU (HTTP 404).
// This is a terminal success outcome, never retried.
func NewProductNotFoundError(sku string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProductNotFound,
		Message:   "Product not found in catalog",
		Details:   fmt.Sprintf("sku: %s", sku),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewGeocodeFailedError creates a non-retryable geocode error.
// Locality is cosmetic; callers degrade to a sentinel string.
func NewGeocodeFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGeocodeFailed,
		Message:   "Geocoding lookup failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSinkWriteFailedError creates a retryable record-sink error.
func NewSinkWriteFailedError(sink string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSinkWriteFailed,
		Message:   "Failed to persist product record",
		Details:   fmt.Sprintf("sink: %s, error: %s", sink, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidInputError creates a non-retryable batch-input error.
func NewInvalidInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   "Batch input item failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// IsRetryable reports whether err carries a retryable StandardError.
// Unknown errors default to retryable, matching the resolvers' policy of
// spending their full attempt budget on anything unclassified.
func IsRetryable(err error) bool {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Retryable
	}
	return true
}
