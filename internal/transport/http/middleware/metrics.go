package middleware

import (
	"strconv"
	"time"

	"github.com/ErlanBelekov/estate-listings/internal/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics records latency and counts per route template, never per raw path,
// so /api/listings/1 and /api/listings/2 share one series.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		metrics.HTTPRequestDuration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
		metrics.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	}
}
