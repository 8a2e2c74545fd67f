package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/siherrmann/ranker/metrics"
)

// Metrics records request counts and durations per route
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// Route templates keep the label cardinality bounded.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		metrics.HttpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HttpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
