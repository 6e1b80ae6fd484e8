// Package errors provides structured error handling for feedlens.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: Network errors (timeouts, refused connections)
//   - 3XX: Response errors (bad status, undecodable body)
//   - 4XX: Not found errors
//   - 5XX: Validation errors
//   - 9XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryNetwork indicates the feedback endpoint could not be reached.
	CategoryNetwork Category = "NETWORK"
	// CategoryResponse indicates the endpoint answered with something unusable.
	CategoryResponse Category = "RESPONSE"
	// CategoryNotFound indicates a requested feedback item does not exist.
	CategoryNotFound Category = "NOT_FOUND"
	// CategoryValidation indicates invalid user input.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates a transient failure worth retrying.
	SeverityWarning Severity = "WARNING"
	// SeverityInfo indicates informational only.
	SeverityInfo Severity = "INFO"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "ERR_102_CONFIG_INVALID"
	ErrCodeConfigWrite    = "ERR_103_CONFIG_WRITE"

	// Network errors (200-299)
	ErrCodeNetworkTimeout     = "ERR_201_NETWORK_TIMEOUT"
	ErrCodeNetworkUnavailable = "ERR_202_NETWORK_UNAVAILABLE"

	// Response errors (300-399)
	ErrCodeBadStatus      = "ERR_301_BAD_STATUS"
	ErrCodeServerError    = "ERR_302_SERVER_ERROR"
	ErrCodeResponseDecode = "ERR_303_RESPONSE_DECODE"

	// Not found errors (400-499)
	ErrCodeFeedbackNotFound = "ERR_401_FEEDBACK_NOT_FOUND"

	// Validation errors (500-599)
	ErrCodeInvalidInput  = "ERR_501_INVALID_INPUT"
	ErrCodeInvalidRating = "ERR_502_INVALID_RATING"
	ErrCodeInvalidFormat = "ERR_503_INVALID_FORMAT"

	// Internal errors (900-999)
	ErrCodeInternal = "ERR_901_INTERNAL"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// "ERR_201_..." -> '2'
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryNetwork
	case '3':
		return CategoryResponse
	case '4':
		return CategoryNotFound
	case '5':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeConfigInvalid:
		return SeverityFatal
	case ErrCodeFeedbackNotFound:
		return SeverityInfo
	}

	if isRetryableCode(code) {
		return SeverityWarning
	}

	return SeverityError
}

// isRetryableCode checks if an error code represents a retryable error.
func isRetryableCode(code string) bool {
	switch code {
	case ErrCodeNetworkTimeout, ErrCodeNetworkUnavailable, ErrCodeServerError:
		return true
	default:
		return false
	}
}
