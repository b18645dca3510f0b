package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger prints one access line per request, tagged with the request id and
// the caller's user id once authenticated.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		var userID int64
		if id, ok := GetIdentity(c); ok {
			userID = id.UserID
		}
		log.Printf("[HTTP] request_id=%s method=%s path=%s status=%d latency_ms=%.3f bytes=%d user_id=%d ip=%s",
			GetRequestID(c),
			c.Request.Method,
			c.FullPath(),
			c.Writer.Status(),
			float64(time.Since(start).Microseconds())/1000.0,
			c.Writer.Size(),
			userID,
			c.ClientIP(),
		)
	}
}
