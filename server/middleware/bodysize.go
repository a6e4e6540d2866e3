package middleware

import (
	"fmt"
	"net/http"

	"github.com/dustin/go-humanize"

	apperrors "github.com/kbukum/aigateway/errors"
)

// ParseSize converts a size string such as "10MB" or "260 MiB" to bytes.
func ParseSize(s string) (int64, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	return int64(n), nil
}

// BodySizeLimit caps request bodies at limit bytes. Requests that declare a
// larger Content-Length are rejected up front with 413; others are cut off
// by http.MaxBytesReader while the handler reads them.
func BodySizeLimit(limit int64) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				writeError(w, TooLarge(limit))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

// TooLarge is the error reported for an oversized body.
func TooLarge(limit int64) *apperrors.AppError {
	return apperrors.New(apperrors.ErrCodeValidation,
		fmt.Sprintf("Request body exceeds %s", humanize.IBytes(uint64(limit))),
		http.StatusRequestEntityTooLarge)
}
