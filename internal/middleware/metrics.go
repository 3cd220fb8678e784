package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/slotting-backend-go/internal/metrics"
)

// Metrics middleware records request counts and latency per route
func Metrics(recorder metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		recorder.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
