package middleware

import (
	"time" // Request latency

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// RequestLogger logs one structured line per request through logrus
func RequestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now() // Start time of the request
		c.Next()            // Run the rest of the chain first

		entry := log.WithFields(logrus.Fields{
			"method":  c.Request.Method,           // HTTP method
			"path":    c.Request.URL.Path,         // Request path
			"status":  c.Writer.Status(),          // Response status
			"latency": time.Since(start).String(), // Time spent in handlers
			"ip":      c.ClientIP(),               // Client address
		})
		// Log server errors at error level
		if c.Writer.Status() >= 500 {
			entry.Error("Request failed")
			return
		}
		entry.Info("Request handled")
	}
}
