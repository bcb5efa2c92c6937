package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request ID in both directions
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey is the gin context key of the request ID
	RequestIDKey = "request_id"

	startedKey  = "request_started"
	maxIDLength = 64
)

// RequestID reuses a client supplied X-Request-ID or assigns a new UUID and
// echoes it in the response
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(startedKey, time.Now())

		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > maxIDLength {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)

		c.Next()
	}
}

// requestDuration is the time since RequestID saw the request, or zero
func requestDuration(c *gin.Context) time.Duration {
	if started, ok := c.Get(startedKey); ok {
		return time.Since(started.(time.Time))
	}
	return 0
}
