package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Gateway failure classes. Every provider call ends in success or exactly
// one of these.
const (
	// ErrCodeConfig indicates a required setting is missing or invalid at startup.
	ErrCodeConfig ErrorCode = "CONFIG_ERROR"
	// ErrCodeValidation indicates the request was rejected before any network call.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	// ErrCodeTransport indicates the provider could not be reached (connection, timeout).
	ErrCodeTransport ErrorCode = "TRANSPORT_ERROR"
	// ErrCodeProvider indicates the provider answered with a non-2xx status.
	ErrCodeProvider ErrorCode = "PROVIDER_ERROR"
	// ErrCodeParse indicates a provider payload could not be converted to a canonical result.
	ErrCodeParse ErrorCode = "PARSE_ERROR"
)

// Generic codes used by the HTTP surface.
const (
	// ErrCodeNotFound indicates the requested route or resource does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInternal indicates an unexpected server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// transientCodes lists failures that may succeed if the caller tries again.
// The gateway itself never retries; the flag is informational.
var transientCodes = map[ErrorCode]bool{
	ErrCodeTransport: true,
}

// IsRetryableCode returns true if the error code describes a transient failure.
func IsRetryableCode(code ErrorCode) bool {
	return transientCodes[code]
}
