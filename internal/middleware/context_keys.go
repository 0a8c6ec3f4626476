package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the acting user's ID in the Gin context.
const userIDKey = contextKey("userID")

// SetUserIDInContext stores the acting user's ID on the Gin context.
// Until the surrounding platform wires real authentication, handlers read the
// ID from the X-User-ID header and stash it here.
func SetUserIDInContext(c *gin.Context, userID string) {
	c.Set(string(userIDKey), userID)
}

// GetUserIDFromContext retrieves the acting user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		userIDCtxVal := c.Request.Context().Value(userIDKey)
		if userIDCtxVal != nil {
			return userIDCtxVal.(string), true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}
