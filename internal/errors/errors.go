package errors

import (
	"errors"
	"fmt"
	"strconv"
)

// FeedError is the structured error type for feedlens.
// It carries enough context to log the failure, decide whether to retry and
// explain it to the user.
type FeedError struct {
	// Code is the unique error code (e.g., "ERR_302_SERVER_ERROR").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, Network, Response, ...).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Retryable indicates if the operation can be retried.
	Retryable bool

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *FeedError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *FeedError) Unwrap() error {
	return e.Cause
}

// Is matches another FeedError by code, so errors.Is works against sentinels
// built with New.
func (e *FeedError) Is(target error) bool {
	if t, ok := target.(*FeedError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
func (e *FeedError) WithDetail(key, value string) *FeedError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
func (e *FeedError) WithSuggestion(suggestion string) *FeedError {
	e.Suggestion = suggestion
	return e
}

// New creates a new FeedError with the given code and message.
// Category, severity, and retryable flag are derived from the code.
func New(code string, message string, cause error) *FeedError {
	return &FeedError{
		Code:      code,
		Message:   message,
		Category:  categoryFromCode(code),
		Severity:  severityFromCode(code),
		Cause:     cause,
		Retryable: isRetryableCode(code),
	}
}

// Wrap creates a FeedError from an existing error, reusing its message.
func Wrap(code string, err error) *FeedError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *FeedError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// NetworkError creates a retryable error for an unreachable endpoint.
func NetworkError(message string, cause error) *FeedError {
	return New(ErrCodeNetworkUnavailable, message, cause).
		WithSuggestion("Check the endpoint URL and your network connection, then try again")
}

// TimeoutError creates a retryable error for a request that took too long.
func TimeoutError(message string, cause error) *FeedError {
	return New(ErrCodeNetworkTimeout, message, cause).
		WithSuggestion("Try again, or raise source.timeout in the config")
}

// StatusError creates an error for a non-2xx response.
// Server errors (5xx) are retryable; client errors are not.
func StatusError(status int, url string) *FeedError {
	code := ErrCodeBadStatus
	if status >= 500 {
		code = ErrCodeServerError
	}
	return New(code, fmt.Sprintf("unexpected status %d from %s", status, url), nil).
		WithDetail("status", strconv.Itoa(status)).
		WithDetail("url", url)
}

// DecodeError creates an error for a response body that could not be decoded.
func DecodeError(message string, cause error) *FeedError {
	return New(ErrCodeResponseDecode, message, cause)
}

// NotFoundError creates an error for a feedback id missing from the endpoint.
func NotFoundError(id string, cause error) *FeedError {
	return New(ErrCodeFeedbackNotFound, fmt.Sprintf("feedback %q not found", id), cause).
		WithDetail("id", id).
		WithSuggestion("Run 'feedlens list' to see available ids")
}

// ValidationError creates a validation-related error.
func ValidationError(message string, cause error) *FeedError {
	return New(ErrCodeInvalidInput, message, cause)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *FeedError {
	return New(ErrCodeInternal, message, cause)
}

// As returns the first FeedError in err's chain.
func As(err error) (*FeedError, bool) {
	var fe *FeedError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// IsRetryable reports whether err carries a retryable FeedError.
func IsRetryable(err error) bool {
	fe, ok := As(err)
	return ok && fe.Retryable
}

// GetCode extracts the error code. Returns empty string if not a FeedError.
func GetCode(err error) string {
	if fe, ok := As(err); ok {
		return fe.Code
	}
	return ""
}

// GetDetail returns a detail value, or empty string.
func GetDetail(err error, key string) string {
	if fe, ok := As(err); ok {
		return fe.Details[key]
	}
	return ""
}
