package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/aigateway/component"
)

// HealthChecker returns health status for registered components.
type HealthChecker func(ctx context.Context) []component.Health

// statusLabels maps the aggregate component status to the label clients
// have always received on /health.
var statusLabels = map[component.HealthStatus]string{
	component.StatusHealthy:   "OK",
	component.StatusDegraded:  "DEGRADED",
	component.StatusUnhealthy: "UNHEALTHY",
}

// Health reports service health with per-component detail. Only an
// unhealthy aggregate answers 503; a degraded provider still serves.
func Health(serviceName string, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		var components []component.Health
		if checker != nil {
			components = checker(c.Request.Context())
		}
		status := component.Aggregate(components)

		code := http.StatusOK
		if status == component.StatusUnhealthy {
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":     statusLabels[status],
			"service":    serviceName,
			"timestamp":  Timestamp(),
			"components": components,
		})
	}
}

// Timestamp formats the current time the way every health payload does.
func Timestamp() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
