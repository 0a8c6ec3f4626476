package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// IdentityMiddleware resolves the acting user from the X-User-ID header and
// stores it in the context. The surrounding platform terminates real
// authentication upstream; every posting still needs an acting user for the
// audit trail.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "X-User-ID header is required"})
			return
		}
		SetUserIDInContext(c, userID)
		c.Next()
	}
}
