package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Keys under which the middleware stores the authenticated identity
const (
	ContextUserIDKey   = "user_id"
	ContextUsernameKey = "username"
)

// AuthMiddleware validates the session and attaches the user to the context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := GetSession(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		if session.IsExpired() {
			DeleteSession(c)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired, please log in again"})
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, session.UserID)
		c.Set(ContextUsernameKey, session.Username)

		c.Next()
	}
}

// CurrentUserID returns the authenticated user's ID from the context.
// Returns 0 when the request is not authenticated.
func CurrentUserID(c *gin.Context) uint {
	if v, ok := c.Get(ContextUserIDKey); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
