package controllers

import (
	"net/http"
	"strconv"

	"Litfeed/api/auth"
	"Litfeed/api/utils/httpctx"

	"github.com/gin-gonic/gin"
)

// canModifyResource is the single ownership check used by every
// owner-scoped write. It allows the request when the authenticated user is
// the owner, or an admin acting on someone else's record.
func canModifyResource(c *gin.Context, ownerID uint) bool {
	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		return false
	}
	if uid == ownerID {
		return true
	}
	return httpctx.IsAdminRequest(c)
}

func respondUnauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"status": http.StatusUnauthorized,
		"error":  map[string]string{"Unauthorized": "Unauthorized"},
	})
}

// optionalViewerID identifies the requester on public endpoints that
// personalize their response when a valid token happens to be present.
func optionalViewerID(c *gin.Context) (uint, bool) {
	uid, err := auth.ExtractTokenID(c.Request)
	if err != nil {
		return 0, false
	}
	return uid, true
}

// parseIDParam reads a numeric path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"error":  map[string]string{"Invalid_request": "Invalid Request"},
		})
		return 0, false
	}
	return uint(id64), true
}
