package middleware

import (
	"time"

	"github.com/JonnyWalker81/wellness/backend/internal/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latency by route template
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.RecordRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
