package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ryanly/mirum-notify/pkg/helpers"
	"github.com/ryanly/mirum-notify/pkg/response"
)

// TriggerAuth validates the bearer token the trigger runtimes attach to their
// calls. It sets trigger_source in the Gin context on success.
func TriggerAuth(tokens *helpers.TriggerTokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || token == "" {
			resp := response.Error[any](c, http.StatusUnauthorized, "missing trigger token", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		claims, err := tokens.Parse(token)
		if err != nil {
			resp := response.Error[any](c, http.StatusUnauthorized, "invalid trigger token", err.Error())
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		c.Set("trigger_source", claims.Source)
		c.Next()
	}
}
