package controllers

import (
	"net/http"

	"Litfeed/api/models"
	"Litfeed/api/monitoring"
	"Litfeed/api/utils/httpctx"

	"github.com/gin-gonic/gin"
)

// GetFeed returns posts authored by users the actor follows, newest first
// with id descending on equal timestamps. The query runs against the
// follows table on every request, so unfollows are reflected immediately.
// Following no one yields an empty page, not an error.
func (server *Server) GetFeed(c *gin.Context) {
	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	page, limit, offset := parsePageParams(c)

	post := models.Post{}
	posts, total, err := post.FeedForUser(server.DB, uid, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch feed"})
		return
	}

	monitoring.FeedRequests.Inc()
	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"posts":      postsToResponse(*posts),
			"pagination": buildPagination(page, limit, total),
		},
	})
}
