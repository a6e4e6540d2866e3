package httpclient

import (
	stderrors "errors"

	"github.com/tidwall/gjson"

	"github.com/kbukum/aigateway/errors"
)

// upstreamMessagePaths are tried in order against a JSON error body.
var upstreamMessagePaths = []string{"error.message", "message"}

// UpstreamMessage extracts a human-readable message from an error body.
// It returns fallback when the body is not JSON or carries no message.
func UpstreamMessage(body []byte, fallback string) string {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return fallback
	}
	for _, path := range upstreamMessagePaths {
		if r := gjson.GetBytes(body, path); r.Type == gjson.String && r.Str != "" {
			return r.Str
		}
	}
	return fallback
}

// ToAppError converts a transport outcome into the gateway taxonomy.
//
// Responses with a non-2xx status become PROVIDER_ERROR, carrying the
// upstream status and message. Failures without a response become
// TRANSPORT_ERROR. prefix is prepended to the message ("OCR API error: ").
// AppErrors pass through unchanged.
func ToAppError(service, prefix string, err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr
	}

	var httpErr *Error
	if !stderrors.As(err, &httpErr) {
		return errors.Transport(service, prefix+err.Error(), err)
	}
	if httpErr.StatusCode == 0 {
		return errors.Transport(service, prefix+httpErr.Message, httpErr)
	}
	msg := UpstreamMessage(httpErr.Body, httpErr.Message)
	return errors.Provider(service, httpErr.StatusCode, prefix+msg).WithCause(httpErr)
}
