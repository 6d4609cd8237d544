package middleware

import (
	"strconv"
	"time"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/platform/metrics"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware creates a Gin middleware handler that records request
// counts and latencies. Routes are labelled by their registered pattern so
// path parameters do not explode cardinality.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequests.WithLabelValues(method, route, status).Inc()
		metrics.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
