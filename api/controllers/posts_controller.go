package controllers

import (
	"encoding/json"
	"html"
	"io"
	"net/http"
	"strings"

	"Litfeed/api/models"
	"Litfeed/api/monitoring"
	"Litfeed/api/utils/formaterror"
	"Litfeed/api/utils/httpctx"

	"github.com/gin-gonic/gin"
)

// CreatePost publishes a post authored by the authenticated user.
func (server *Server) CreatePost(c *gin.Context) {
	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
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

	post := models.Post{}
	if err := json.Unmarshal(body, &post); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}

	post.AuthorID = uid
	post.Prepare()
	errorMessages := post.Validate()
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}

	postCreated, err := post.SavePost(server.DB)
	if err != nil {
		formattedError := formaterror.FormatError(err.Error())
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  formattedError,
		})
		return
	}

	monitoring.PostsCreated.Inc()
	c.JSON(http.StatusCreated, gin.H{
		"status":   http.StatusCreated,
		"response": postToResponse(postCreated),
	})
}

// GetPosts lists posts, newest first, with optional search.
func (server *Server) GetPosts(c *gin.Context) {
	page, limit, offset := parsePageParams(c)
	search := strings.TrimSpace(c.Query("search"))

	post := models.Post{}
	posts, total, err := post.FindAllPosts(server.DB, search, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"posts":      postsToResponse(*posts),
			"pagination": buildPagination(page, limit, total),
		},
	})
}

// GetPost returns one post by id.
func (server *Server) GetPost(c *gin.Context) {
	pid, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	post := models.Post{}
	postGotten, err := post.FindPostByID(server.DB, pid)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": postToResponse(postGotten),
	})
}

// GetUserPosts lists a user's posts, newest first.
func (server *Server) GetUserPosts(c *gin.Context) {
	uid, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user := models.User{}
	if _, err := user.FindUserByID(server.DB, uid); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	post := models.Post{}
	posts, err := post.FindUserPosts(server.DB, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": postsToResponse(*posts),
	})
}

// UpdatePost is the full update, restricted to the post's owner.
func (server *Server) UpdatePost(c *gin.Context) {
	pid, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	existing := models.Post{}
	if _, err := existing.FindPostByID(server.DB, pid); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if !canModifyResource(c, existing.AuthorID) {
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

	post := models.Post{}
	if err := json.Unmarshal(body, &post); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}

	post.AuthorID = existing.AuthorID
	post.Prepare()
	errorMessages := post.Validate()
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}

	post.ID = pid
	updated, err := post.UpdatePost(server.DB, map[string]interface{}{
		"title":   post.Title,
		"content": post.Content,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to update post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": postToResponse(updated),
	})
}

// PatchPost updates only the supplied subset of title/content.
func (server *Server) PatchPost(c *gin.Context) {
	pid, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	existing := models.Post{}
	if _, err := existing.FindPostByID(server.DB, pid); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if !canModifyResource(c, existing.AuthorID) {
		respondUnauthorized(c)
		return
	}

	var requestBody map[string]interface{}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot parse request body"})
		return
	}

	// Merge the patch over the stored record so validation sees the final
	// state. Only the supplied keys are written; the stored values of the
	// others are never rewritten.
	merged := models.Post{
		Title:    existing.Title,
		Content:  existing.Content,
		AuthorID: existing.AuthorID,
	}
	fields := map[string]interface{}{}

	if raw, present := requestBody["title"]; present {
		title, ok := raw.(string)
		if !ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"status": http.StatusUnprocessableEntity,
				"error":  map[string]string{"Invalid_title": "Title must be a string"},
			})
			return
		}
		merged.Title = html.EscapeString(strings.TrimSpace(title))
		fields["title"] = merged.Title
	}
	if raw, present := requestBody["content"]; present {
		content, ok := raw.(string)
		if !ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"status": http.StatusUnprocessableEntity,
				"error":  map[string]string{"Invalid_content": "Content must be a string"},
			})
			return
		}
		merged.Content = html.EscapeString(strings.TrimSpace(content))
		fields["content"] = merged.Content
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No updatable fields supplied"})
		return
	}

	errorMessages := merged.Validate()
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}

	merged.ID = pid
	updated, err := merged.UpdatePost(server.DB, fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to update post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": postToResponse(updated),
	})
}

// DeletePost removes a post and cascades its comments and likes. Owner
// only, with the admin override.
func (server *Server) DeletePost(c *gin.Context) {
	pid, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	existing := models.Post{}
	if _, err := existing.FindPostByID(server.DB, pid); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if !canModifyResource(c, existing.AuthorID) {
		respondUnauthorized(c)
		return
	}

	rows, err := existing.DeletePost(server.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to delete post"})
		return
	}
	if rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Post deleted",
	})
}
