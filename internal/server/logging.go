package server

import (
	"time"

	"courtly/internal/logger"

	"github.com/gin-gonic/gin"
)

// RequestLoggingMiddleware emits one structured log line per request after
// the handler chain finishes.
func RequestLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		clientIP := c.ClientIP()
		method := c.Request.Method

		if raw != "" {
			path = path + "?" + raw
		}

		logger.Info("HTTP request",
			"method", method,
			"path", path,
			"status", status,
			"latency_ms", latency.Milliseconds(),
			"bytes", c.Writer.Size(),
			"client_ip", clientIP,
			"user_agent", c.Request.UserAgent(),
		)
	}
}
