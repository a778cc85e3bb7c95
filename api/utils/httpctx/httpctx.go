package httpctx

import "github.com/gin-gonic/gin"

// Context keys set by the token auth middleware. Handlers go through the
// accessors below instead of touching the raw keys.
const (
	UserIDKey  = "userID"
	IsAdminKey = "isAdmin"
)

// CurrentUserID retrieves the authenticated user ID from Gin context if present.
func CurrentUserID(c *gin.Context) (uint, bool) {
	val, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	uid, ok := val.(uint)
	return uid, ok
}

// SetCurrentUser stashes the authenticated identity for downstream handlers.
func SetCurrentUser(c *gin.Context, userID uint, isAdmin bool) {
	c.Set(UserIDKey, userID)
	c.Set(IsAdminKey, isAdmin)
}

// IsAdminRequest indicates whether the current request is from an admin.
func IsAdminRequest(c *gin.Context) bool {
	val, exists := c.Get(IsAdminKey)
	if !exists {
		return false
	}
	isAdmin, ok := val.(bool)
	return ok && isAdmin
}
