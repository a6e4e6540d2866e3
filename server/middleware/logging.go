package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/kbukum/aigateway/logger"
)

// slowRequest marks requests worth flagging in the log.
const slowRequest = 5 * time.Second

// RequestLogger logs method, path, status and latency for every request
// except health and metrics probes.
func RequestLogger(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isProbe(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)
			latency := time.Since(start)

			fields := map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      sw.status,
				"bytes":       sw.bytes,
				"duration_ms": latency.Milliseconds(),
			}
			if latency > slowRequest {
				fields["slow"] = true
			}
			logByStatus(log.WithContext(r.Context()), fields, sw.status)
		})
	}
}

// isProbe matches /health, /metrics and any /api/.../health route.
func isProbe(path string) bool {
	switch path {
	case "/health", "/metrics", "/info":
		return true
	}
	return strings.HasPrefix(path, "/api/") && strings.HasSuffix(path, "/health")
}

func logByStatus(log *logger.Logger, fields map[string]interface{}, status int) {
	switch {
	case status >= 500:
		log.Error("Request completed", fields)
	case status >= 400:
		log.Warn("Request completed", fields)
	default:
		log.Info("Request completed", fields)
	}
}
