package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeTimeout            ErrorCode = "COMMON_004"
	ErrCodeConflict           ErrorCode = "COMMON_005"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_006"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_007"
	ErrCodeSerialization      ErrorCode = "COMMON_008"
	ErrCodeDatabaseError      ErrorCode = "COMMON_009"
	ErrCodeCacheError         ErrorCode = "COMMON_010"
	ErrCodeStorageError       ErrorCode = "COMMON_011"
	ErrCodeMessageQueueError  ErrorCode = "COMMON_012"
	ErrCodeNotImplemented     ErrorCode = "COMMON_013"
)

// Input Error Codes
const (
	ErrCodeInputEmptySMILES    ErrorCode = "INPUT_001"
	ErrCodeInputInvalidSMILES  ErrorCode = "INPUT_002"
	ErrCodeInputInvalidSection ErrorCode = "INPUT_003"
	ErrCodeInputInvalidFormat  ErrorCode = "INPUT_004"
)

// Identity Module Error Codes
const (
	ErrCodeIdentityParseFailed    ErrorCode = "IDENT_001"
	ErrCodeIdentityCanonicalize   ErrorCode = "IDENT_002"
	ErrCodeIdentityNotResolved    ErrorCode = "IDENT_003"
	ErrCodeIdentityFormulaFailed  ErrorCode = "IDENT_004"
)

// Property Module Error Codes
const (
	ErrCodePropertyUnknownKey     ErrorCode = "PROP_001"
	ErrCodePropertyUnavailable    ErrorCode = "PROP_002"
	ErrCodePropertyTimeout        ErrorCode = "PROP_003"
	ErrCodePropertySourceFailed   ErrorCode = "PROP_004"
	ErrCodePropertyAllSourcesDown ErrorCode = "PROP_005"
)

// Hazard Module Error Codes
const (
	ErrCodeHazardRuleInvalid    ErrorCode = "HAZARD_001"
	ErrCodeHazardRuleConflict   ErrorCode = "HAZARD_002"
	ErrCodeHazardPrecondition   ErrorCode = "HAZARD_003"
)

// Document Module Error Codes
const (
	ErrCodeDocumentAssemblyFailed ErrorCode = "DOC_001"
	ErrCodeDocumentPrecondition   ErrorCode = "DOC_002"
	ErrCodeDocumentNotFound       ErrorCode = "DOC_003"
	ErrCodeDocumentRenderFailed   ErrorCode = "DOC_004"
)

// Data Source Error Codes
const (
	ErrCodeDataSourceUnavailable ErrorCode = "SRC_001"
	ErrCodeDataSourceRateLimited ErrorCode = "SRC_002"
	ErrCodeDataSourceParseError  ErrorCode = "SRC_003"
	ErrCodeDataSourceNoMatch     ErrorCode = "SRC_004"
)

// Short aliases used throughout the codebase.
const (
	CodeInternal       = ErrCodeInternal
	CodeInvalidParam   = ErrCodeBadRequest
	CodeNotFound       = ErrCodeNotFound
	CodeConflict       = ErrCodeConflict
	CodeRateLimit      = ErrCodeTooManyRequests
	CodeTimeout        = ErrCodeTimeout
	CodeNotImplemented = ErrCodeNotImplemented
	CodeOK             = ErrorCode("OK")
	CodeUnknown        = ErrorCode("UNKNOWN")
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeStorageError:       http.StatusInternalServerError,
	ErrCodeMessageQueueError:  http.StatusInternalServerError,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeInputEmptySMILES:    http.StatusBadRequest,
	ErrCodeInputInvalidSMILES:  http.StatusBadRequest,
	ErrCodeInputInvalidSection: http.StatusBadRequest,
	ErrCodeInputInvalidFormat:  http.StatusBadRequest,

	ErrCodeIdentityParseFailed:   http.StatusBadRequest,
	ErrCodeIdentityCanonicalize:  http.StatusInternalServerError,
	ErrCodeIdentityNotResolved:   http.StatusConflict,
	ErrCodeIdentityFormulaFailed: http.StatusInternalServerError,

	ErrCodePropertyUnknownKey:     http.StatusBadRequest,
	ErrCodePropertyUnavailable:    http.StatusServiceUnavailable,
	ErrCodePropertyTimeout:        http.StatusGatewayTimeout,
	ErrCodePropertySourceFailed:   http.StatusBadGateway,
	ErrCodePropertyAllSourcesDown: http.StatusServiceUnavailable,

	ErrCodeHazardRuleInvalid:  http.StatusInternalServerError,
	ErrCodeHazardRuleConflict: http.StatusInternalServerError,
	ErrCodeHazardPrecondition: http.StatusConflict,

	ErrCodeDocumentAssemblyFailed: http.StatusInternalServerError,
	ErrCodeDocumentPrecondition:   http.StatusConflict,
	ErrCodeDocumentNotFound:       http.StatusNotFound,
	ErrCodeDocumentRenderFailed:   http.StatusInternalServerError,

	ErrCodeDataSourceUnavailable: http.StatusServiceUnavailable,
	ErrCodeDataSourceRateLimited: http.StatusTooManyRequests,
	ErrCodeDataSourceParseError:  http.StatusBadGateway,
	ErrCodeDataSourceNoMatch:     http.StatusNotFound,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeTimeout:            "request timeout",
	ErrCodeConflict:           "resource conflict",
	ErrCodeTooManyRequests:    "too many requests",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeDatabaseError:      "database error",
	ErrCodeCacheError:         "cache error",
	ErrCodeStorageError:       "object storage error",
	ErrCodeMessageQueueError:  "message queue error",
	ErrCodeNotImplemented:     "not implemented",

	ErrCodeInputEmptySMILES:    "SMILES string is required",
	ErrCodeInputInvalidSMILES:  "Invalid SMILES format",
	ErrCodeInputInvalidSection: "section number must be between 1 and 16",
	ErrCodeInputInvalidFormat:  "unsupported output format",

	ErrCodeIdentityParseFailed:   "failed to parse molecular structure",
	ErrCodeIdentityCanonicalize:  "failed to canonicalise structure",
	ErrCodeIdentityNotResolved:   "molecular identity has not been resolved",
	ErrCodeIdentityFormulaFailed: "failed to derive molecular formula",

	ErrCodePropertyUnknownKey:     "unknown property key",
	ErrCodePropertyUnavailable:    "property source unavailable",
	ErrCodePropertyTimeout:        "property lookup timed out",
	ErrCodePropertySourceFailed:   "property source request failed",
	ErrCodePropertyAllSourcesDown: "all property sources unavailable",

	ErrCodeHazardRuleInvalid:  "invalid hazard rule",
	ErrCodeHazardRuleConflict: "conflicting hazard rules",
	ErrCodeHazardPrecondition: "hazard classification requires resolved identity and gathered properties",

	ErrCodeDocumentAssemblyFailed: "failed to assemble safety data sheet",
	ErrCodeDocumentPrecondition:   "document assembly called out of order",
	ErrCodeDocumentNotFound:       "safety data sheet not found",
	ErrCodeDocumentRenderFailed:   "failed to render safety data sheet",

	ErrCodeDataSourceUnavailable: "data source unavailable",
	ErrCodeDataSourceRateLimited: "data source rate limited",
	ErrCodeDataSourceParseError:  "failed to parse data source response",
	ErrCodeDataSourceNoMatch:     "no record found in data source",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}

//Personal.AI order the ending
