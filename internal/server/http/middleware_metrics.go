package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"remind/internal/observability"
)

// MetricsMiddleware records latency, status and in-flight counts per route.
func MetricsMiddleware(metrics *observability.RequestMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics == nil {
			c.Next()
			return
		}
		done := metrics.RequestStarted()
		start := time.Now()
		c.Next()
		done()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.Observe(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
