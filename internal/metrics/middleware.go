package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware records HTTP request duration and count.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		m.ObserveRequest(c.Request.Method, normalizePath(c.FullPath()), strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

// normalizePath keeps label cardinality bounded: the route pattern is used,
// and requests that matched no route share one label.
func normalizePath(path string) string {
	if path == "" {
		return "unknown"
	}
	return path
}
