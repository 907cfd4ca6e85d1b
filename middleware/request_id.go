package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "requestID"

// RequestID keeps a client supplied X-Request-Id or generates one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-Id")
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Set(requestIDKey, rid)
		c.Writer.Header().Set("X-Request-Id", rid)
		c.Next()
	}
}

// Logger is gin's access log with the request id added to each line.
func Logger() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(p gin.LogFormatterParams) string {
		rid, _ := p.Keys[requestIDKey].(string)
		return fmt.Sprintf("[GIN] %s | rid=%s | %3d | %13v | %15s | %-7s %#v\n%s",
			p.TimeStamp.Format(time.RFC3339),
			rid,
			p.StatusCode,
			p.Latency,
			p.ClientIP,
			p.Method,
			p.Path,
			p.ErrorMessage,
		)
	})
}
