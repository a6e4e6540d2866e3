package errors

import (
	stderrors "errors"
	"net/http"
)

// ErrorResponse is the JSON envelope returned to clients.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Message string         `json:"message"`
	Status  int            `json:"status"`
	Code    ErrorCode      `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// ToResponse converts an AppError to an ErrorResponse for JSON serialization.
func (e *AppError) ToResponse() ErrorResponse {
	status := e.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return ErrorResponse{
		Error:   Title(status),
		Message: e.Message,
		Status:  status,
		Code:    e.Code,
		Details: e.Details,
	}
}

// Title returns the short error label used in the envelope's "error" field.
func Title(status int) string {
	switch {
	case status == http.StatusBadRequest:
		return "Validation failed"
	case status == http.StatusNotFound:
		return "Not found"
	case status == http.StatusRequestEntityTooLarge:
		return "Payload too large"
	case status >= 500:
		return "Internal server error"
	default:
		return http.StatusText(status)
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
