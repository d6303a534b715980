package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "requestID"

// RequestID ensures each request has a request ID. It reads
// X-Request-ID if provided; otherwise, it generates a UUID. The value
// is stored in the gin context and also set in the response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

// GetRequestID returns the request ID attached by RequestID, or empty.
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
