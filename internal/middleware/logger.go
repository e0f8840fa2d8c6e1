package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeyRequestID is the gin context key carrying the request ID. Every
// log line tied to a request leads with this ID.
const ContextKeyRequestID = "request_id"

// RequestID ensures every request carries an ID: the caller's X-Request-ID
// when present, a fresh UUID otherwise. The ID is echoed on the response and
// stored in the context for log correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextKeyRequestID, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// Logger writes one line per completed request: ID, method, path, status,
// latency.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Printf("[%s] %s %s %d %s",
			c.GetString(ContextKeyRequestID),
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
		)
	}
}

// Recovery recovers from handler panics and responds 500.
func Recovery() gin.HandlerFunc {
	return gin.Recovery()
}
