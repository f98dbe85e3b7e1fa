package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oysloe/oysloe-backend/pkg/metrics"
)

// MetricsMiddleware records request count and latency per route template.
// Unmatched paths are recorded under the "unmatched" route label.
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
