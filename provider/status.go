package provider

import (
	"strings"

	"github.com/kbukum/aigateway/errors"
)

// StatusOK is the outcome label for a successful call.
const StatusOK = "ok"

// Outcome labels a call result for logs and metrics: "ok", the lower-cased
// error code of an AppError ("provider_error"), or "error".
func Outcome(err error) string {
	if err == nil {
		return StatusOK
	}
	if appErr, ok := errors.AsAppError(err); ok {
		return strings.ToLower(string(appErr.Code))
	}
	return "error"
}
