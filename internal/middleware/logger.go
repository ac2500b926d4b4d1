package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request with the authenticated username
// when present. Health and metrics probes are skipped in production to keep
// the log readable.
func RequestLogger(logger *slog.Logger, skipProbes bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if skipProbes && (c.Request.URL.Path == "/health" || c.Request.URL.Path == "/metrics") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"ip", c.ClientIP(),
			"user", Username(c),
		)
	}
}
