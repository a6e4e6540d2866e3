package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable reports whether the failure looks transient.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the status the HTTP layer answers with.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any, len(details))
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// Config reports required settings that are absent.
func Config(missing ...string) *AppError {
	return &AppError{
		Code:       ErrCodeConfig,
		Message:    "missing required configuration: " + strings.Join(missing, ", "),
		HTTPStatus: http.StatusInternalServerError,
		Details:    map[string]any{"missing": missing},
	}
}

// Validation creates an error for a request rejected before any provider call.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeValidation, Message: message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// Transport creates an error for a provider that could not be reached.
// message is the full caller-facing text; cause is the I/O failure.
func Transport(service, message string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeTransport, Message: message,
		HTTPStatus: http.StatusInternalServerError, Retryable: true,
		Details: map[string]any{"service": service}, Cause: cause,
	}
}

// Provider creates an error for a provider that answered with a non-2xx status.
func Provider(service string, upstreamStatus int, message string) *AppError {
	return &AppError{
		Code: ErrCodeProvider, Message: message,
		HTTPStatus: http.StatusInternalServerError,
		Retryable:  upstreamStatus == http.StatusTooManyRequests || upstreamStatus >= 500,
		Details: map[string]any{
			"service":         service,
			"upstream_status": upstreamStatus,
		},
	}
}

// Parse creates an error for a provider payload that is not a valid result.
// The raw payload is kept verbatim in both the message and the details.
func Parse(parserMsg, raw string) *AppError {
	return &AppError{
		Code:       ErrCodeParse,
		Message:    fmt.Sprintf("Failed to parse JSON response: %s. Raw response: %s", parserMsg, raw),
		HTTPStatus: http.StatusInternalServerError,
		Details: map[string]any{
			"parser_error": parserMsg,
			"raw_response": raw,
		},
	}
}

// NotFound creates an error for an unknown route.
func NotFound(path string) *AppError {
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("Route %s not found", path),
		HTTPStatus: http.StatusNotFound,
	}
}

// Internal creates a new AppError for an unexpected failure.
func Internal(cause error) *AppError {
	msg := "Unknown error occurred"
	if cause != nil {
		msg = cause.Error()
	}
	return &AppError{
		Code: ErrCodeInternal, Message: msg,
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}

// IsCode reports whether err is an AppError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr) && appErr.Code == code
}
