package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lexbrief/internal/logger"
	"lexbrief/internal/trace"
)

// ContextKeyRequestID is the gin context key holding the request ID.
const ContextKeyRequestID = "request_id"

// RequestID injects an X-Request-ID header into the request and response,
// and onto the request context for outbound calls.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(trace.HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(ContextKeyRequestID, requestID)
		c.Header(trace.HeaderRequestID, requestID)
		c.Request = c.Request.WithContext(trace.WithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}

// Logger logs each HTTP request with method, path, status, and latency.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := logger.Fields{
			"request_id": c.GetString(ContextKeyRequestID),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": latency.Milliseconds(),
		}
		if sid := GetSessionID(c); sid != "" {
			fields["session_id"] = sid
		}

		switch {
		case c.Writer.Status() >= 500:
			logger.ErrorWithFields("request completed", fields)
		case c.Writer.Status() >= 400:
			logger.WarnWithFields("request completed", fields)
		default:
			logger.InfoWithFields("request completed", fields)
		}
	}
}

// Recovery recovers from panics and returns a 500 error.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.ErrorWithFields("panic recovered", logger.Fields{
			"request_id": c.GetString(ContextKeyRequestID),
			"path":       c.Request.URL.Path,
			"panic":      recovered,
		})
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}
