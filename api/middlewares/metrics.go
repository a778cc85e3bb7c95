package middlewares

import (
	"strconv"
	"time"

	"Litfeed/api/monitoring"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records per-request durations labelled by method, route
// template and status. c.FullPath() keeps the label cardinality bounded
// (":id" instead of every concrete id).
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		monitoring.RequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
