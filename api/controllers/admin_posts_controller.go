package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"Litfeed/api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func toAdminPostSummary(post *models.Post, likesCount, commentsCount int64) AdminPostDTO {
	authorUsername := ""
	if post.Author.ID != 0 {
		authorUsername = post.Author.Username
	}

	return AdminPostDTO{
		ID:             post.ID,
		Title:          post.Title,
		Content:        post.Content,
		AuthorID:       post.AuthorID,
		AuthorUsername: authorUsername,
		LikesCount:     likesCount,
		CommentsCount:  commentsCount,
		CreatedAt:      post.CreatedAt,
		UpdatedAt:      post.UpdatedAt,
	}
}

// AdminListPosts returns a paginated list of posts for moderation tools.
func (server *Server) AdminListPosts(c *gin.Context) {
	page, limit, offset := parsePageParams(c)
	search := strings.TrimSpace(c.Query("search"))
	authorParam := strings.TrimSpace(c.Query("author_id"))

	query := server.DB.Model(&models.Post{})
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ?", like)
	}
	if authorParam != "" {
		aid, err := strconv.ParseUint(authorParam, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid author_id"})
			return
		}
		query = query.Where("author_id = ?", uint(aid))
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to count posts"})
		return
	}

	var posts []models.Post
	if err := query.
		Preload("Author").
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch posts"})
		return
	}

	postResponses := make([]AdminPostDTO, len(posts))
	for i := range posts {
		var likesCount, commentsCount int64
		server.DB.Model(&models.Like{}).Where("post_id = ?", posts[i].ID).Count(&likesCount)
		server.DB.Model(&models.Comment{}).Where("post_id = ?", posts[i].ID).Count(&commentsCount)
		postResponses[i] = toAdminPostSummary(&posts[i], likesCount, commentsCount)
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"posts":      postResponses,
			"pagination": buildPagination(page, limit, total),
		},
	})
}

// AdminDeletePost deletes any post, cascading its comments and likes.
func (server *Server) AdminDeletePost(c *gin.Context) {
	pid, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var post models.Post
	if err := server.DB.First(&post, pid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving post"})
		return
	}

	if _, err := post.DeletePost(server.DB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": "Post deleted"})
}
