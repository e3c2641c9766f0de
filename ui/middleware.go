package ui

import (
	"time"

	"github.com/gin-gonic/gin"

	"termdeposit/internal"
)

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(RequestLogger(s.logger))
	s.router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		s.logger.Error("panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		c.AbortWithStatusJSON(500, gin.H{"error": "internal server error"})
	}))
}

// RequestLogger writes one structured access-log entry per request.
func RequestLogger(logger *internal.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		status := c.Writer.Status()
		entry := logger.With(
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			"bytes", c.Writer.Size(),
		)
		switch {
		case status >= 500:
			entry.Error("%s %s", c.Request.Method, path)
		case status >= 400:
			entry.Warn("%s %s", c.Request.Method, path)
		default:
			entry.Info("%s %s", c.Request.Method, path)
		}
	}
}
