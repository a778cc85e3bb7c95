package controllers

import (
	"errors"
	"net/http"

	"Litfeed/api/models"
	"Litfeed/api/utils/httpctx"

	"github.com/gin-gonic/gin"
)

// LikePost records the authenticated user's like on a post. Liking the
// same post twice is an error, matching the "Already liked" behavior of the
// clients.
func (server *Server) LikePost(c *gin.Context) {
	pid, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	// check if the post exists:
	post := models.Post{}
	if _, err := post.FindPostByID(server.DB, pid); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  map[string]string{"No_post": "No post found"},
		})
		return
	}

	like := models.Like{UserID: uid, PostID: pid}

	likeCreated, err := like.SaveLike(server.DB)
	if err != nil {
		if errors.Is(err, models.ErrDoubleLike) {
			c.JSON(http.StatusBadRequest, gin.H{
				"status": http.StatusBadRequest,
				"error":  map[string]string{"Double_like": "You have already liked this post"},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to like post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":   http.StatusCreated,
		"response": likeToResponse(likeCreated),
	})
}

// UnlikePost removes the authenticated user's like on a post.
func (server *Server) UnlikePost(c *gin.Context) {
	pid, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	like := models.Like{UserID: uid, PostID: pid}
	rows, err := like.DeleteLike(server.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to unlike post"})
		return
	}
	if rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  map[string]string{"No_like": "No Like Found"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Like deleted",
	})
}

// GetLikes lists the likes on a post.
func (server *Server) GetLikes(c *gin.Context) {
	pid, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// Check if the post exists:
	post := models.Post{}
	if _, err := post.FindPostByID(server.DB, pid); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  map[string]string{"No_post": "No post found"},
		})
		return
	}

	like := models.Like{}
	likes, err := like.GetLikesInfo(server.DB, pid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch likes"})
		return
	}

	likeResponses := make([]LikeDTO, len(*likes))
	for i := range *likes {
		likeResponses[i] = likeToResponse(&(*likes)[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": likeResponses,
	})
}
