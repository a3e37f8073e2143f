package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/isk-lottery/internal/metrics"
)

// Metrics records request counts and latencies by route template, so path
// parameters do not explode label cardinality.
func Metrics() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequest(ctx.Request.Method, path, ctx.Writer.Status(), time.Since(start))
	}
}
