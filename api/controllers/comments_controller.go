package controllers

import (
	"encoding/json"
	"io"
	"net/http"

	"Litfeed/api/models"
	"Litfeed/api/utils/formaterror"
	"Litfeed/api/utils/httpctx"

	"github.com/gin-gonic/gin"
)

// CreateComment adds a comment to a post as the authenticated user.
func (server *Server) CreateComment(c *gin.Context) {
	pid, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	// Verify the post exists
	post := models.Post{}
	if _, err := post.FindPostByID(server.DB, pid); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  map[string]string{"No_post": "No post found"},
		})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Unable to get request",
		})
		return
	}

	comment := models.Comment{}
	if err := json.Unmarshal(body, &comment); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}

	comment.UserID = uid
	comment.PostID = pid
	comment.Prepare()
	errorMessages := comment.Validate()
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}

	commentCreated, err := comment.SaveComment(server.DB)
	if err != nil {
		formattedError := formaterror.FormatError(err.Error())
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  formattedError,
		})
		return
	}
	if _, err := commentCreated.FindCommentByID(server.DB, commentCreated.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load comment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":   http.StatusCreated,
		"response": commentToResponse(commentCreated),
	})
}

// GetComments lists a post's comments, newest first.
func (server *Server) GetComments(c *gin.Context) {
	pid, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	post := models.Post{}
	if _, err := post.FindPostByID(server.DB, pid); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  map[string]string{"No_post": "No post found"},
		})
		return
	}

	comment := models.Comment{}
	comments, err := comment.GetPostComments(server.DB, pid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch comments"})
		return
	}

	commentResponses := make([]CommentDTO, len(*comments))
	for i := range *comments {
		commentResponses[i] = commentToResponse(&(*comments)[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": commentResponses,
	})
}

// UpdateComment edits a comment body. Owner only, with the admin override.
func (server *Server) UpdateComment(c *gin.Context) {
	cid, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	existing := models.Comment{}
	if _, err := existing.FindCommentByID(server.DB, cid); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  map[string]string{"No_comment": "No comment found"},
		})
		return
	}

	if !canModifyResource(c, existing.UserID) {
		respondUnauthorized(c)
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Unable to get request",
		})
		return
	}

	comment := models.Comment{}
	if err := json.Unmarshal(body, &comment); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}

	comment.UserID = existing.UserID
	comment.PostID = existing.PostID
	comment.Prepare()
	errorMessages := comment.Validate()
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}

	comment.ID = cid
	updated, err := comment.UpdateAComment(server.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to update comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": commentToResponse(updated),
	})
}

// DeleteComment removes a comment. Owner only, with the admin override.
func (server *Server) DeleteComment(c *gin.Context) {
	cid, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	existing := models.Comment{}
	if _, err := existing.FindCommentByID(server.DB, cid); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  map[string]string{"No_comment": "No comment found"},
		})
		return
	}

	if !canModifyResource(c, existing.UserID) {
		respondUnauthorized(c)
		return
	}

	rows, err := existing.DeleteAComment(server.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to delete comment"})
		return
	}
	if rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  map[string]string{"No_comment": "No comment found"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Comment deleted",
	})
}
