package router

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// RequestLogger writes one access log line per request. The request id only
// correlates log lines; it is never sent to the client. The path is quoted
// because it is decoded and client-controlled.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := uuid.New().String()
		c.Set(requestIDKey, id)

		c.Next()

		// Size is -1 until the body is written
		size := c.Writer.Size()
		if size < 0 {
			size = 0
		}

		log.Printf("%s %s %q %d %dB %s",
			id,
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			size,
			time.Since(start),
		)
	}
}
