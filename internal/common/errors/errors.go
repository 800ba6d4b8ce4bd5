// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeParseError   ErrorCode = "PARSE_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeCardNotFound ErrorCode = "CARD_NOT_FOUND"

	ErrCodeSnapshotNotFound   ErrorCode = "SNAPSHOT_NOT_FOUND"
	ErrCodeSnapshotLoadFailed ErrorCode = "SNAPSHOT_LOAD_FAILED"

	ErrCodeCatalogLoadFailed ErrorCode = "CATALOG_LOAD_FAILED"

	ErrCodeExternalService  ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeTimeout          ErrorCode = "TIMEOUT_ERROR"
	ErrCodeResourceNotFound ErrorCode = "RESOURCE_NOT_FOUND"
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
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

// Is matches another StandardError by code, so errors.Is works against the
// sentinel values below.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	return ok && t.Code == e.Code
}

// Sentinels for errors.Is checks.
var (
	ErrParse            = &StandardError{Code: ErrCodeParseError}
	ErrInvalidInput     = &StandardError{Code: ErrCodeInvalidInput}
	ErrCardNotFound     = &StandardError{Code: ErrCodeCardNotFound}
	ErrSnapshotNotFound = &StandardError{Code: ErrCodeSnapshotNotFound}
)

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

func NewParseError(err error) *StandardError {
	return newError(ErrCodeParseError, "Job variables are not valid JSON", err.Error(), false)
}

// NewInvalidInputError reports variables that parse but violate the input schema.
func NewInvalidInputError(details string) *StandardError {
	return newError(ErrCodeInvalidInput, "Job variables failed validation", details, false)
}

func NewCardNotFoundError(cardID string) *StandardError {
	return newError(ErrCodeCardNotFound, "Card not found in catalog", fmt.Sprintf("cardId: %s", cardID), false)
}

func NewSnapshotNotFoundError(businessID string) *StandardError {
	return newError(ErrCodeSnapshotNotFound, "No credit snapshot for business", fmt.Sprintf("businessId: %s", businessID), false)
}

// NewSnapshotLoadFailedError is retryable: the store was unreachable, not empty.
func NewSnapshotLoadFailedError(businessID string, err error) *StandardError {
	return newError(ErrCodeSnapshotLoadFailed, "Credit snapshot could not be loaded",
		fmt.Sprintf("businessId: %s, error: %s", businessID, err.Error()), true)
}

func NewCatalogLoadFailedError(source string, err error) *StandardError {
	return newError(ErrCodeCatalogLoadFailed, "Card catalog could not be loaded",
		fmt.Sprintf("source: %s, error: %s", source, err.Error()), true)
}

func NewExternalServiceError(service string, err error) *StandardError {
	return newError(ErrCodeExternalService, fmt.Sprintf("External service '%s' error", service), err.Error(), true)
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError(ErrCodeTimeout, fmt.Sprintf("Service '%s' timeout", service), err.Error(), true)
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return newError(ErrCodeResourceNotFound, fmt.Sprintf("Resource not found in %s", service), details, false)
}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeSnapshotLoadFailed,
		ErrCodeCatalogLoadFailed,
		ErrCodeExternalService:
		return 3
	case ErrCodeTimeout:
		return 2
	default:
		return 0 // Business errors: no retry
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      string(stdErr.Code),
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "SNAPSHOT"):
		return "SNAPSHOT"
	case strings.Contains(codeStr, "CATALOG") || strings.Contains(codeStr, "CARD"):
		return "CATALOG"
	case strings.Contains(codeStr, "PARSE") || strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	case strings.Contains(codeStr, "TIMEOUT") || strings.Contains(codeStr, "EXTERNAL"):
		return "EXTERNAL"
	default:
		return "OTHER"
	}
}
