package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openlodge/clubadmin/internal/pkg/metrics"
)

// Metrics records request counts, latencies, and in-flight gauge. The
// route template is used as the path label to keep cardinality low.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		m.IncrementInFlight()
		start := time.Now()

		c.Next()

		m.DecrementInFlight()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.RecordHTTPRequest(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
