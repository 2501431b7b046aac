package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDMiddleware tags every trigger call with a request id. The change
// feed and scheduler pass their own correlation id in X-Request-ID; anything
// without one gets a fresh UUID. The id is echoed back in the response header
// so delivery logs can be matched to the triggering write.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}
