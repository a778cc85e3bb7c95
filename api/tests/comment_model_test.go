package tests

import (
	"net/http"
	"strconv"
	"testing"

	"Litfeed/api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCreateComment(t *testing.T) {
	server := newTestServer(t)

	poster := createTestUser(t, server.DB, "poster", "poster@example.com")
	commenter := createTestUser(t, server.DB, "commenter", "commenter@example.com")
	post := createTestPost(t, server.DB, poster.ID, "Post", "content")

	r := gin.Default()
	r.POST("/api/v1/posts/:id/comments", AuthMiddlewareForTests(commenter.ID, false), server.CreateComment)

	w := doJSON(t, r, http.MethodPost, "/api/v1/posts/"+strconv.Itoa(int(post.ID))+"/comments", map[string]string{
		"body": "Great post",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	responseBody := parseBody(t, w)
	responseComment := responseBody["response"].(map[string]interface{})
	assert.Equal(t, "Great post", responseComment["body"])
	assert.Equal(t, float64(commenter.ID), responseComment["user_id"])
	assert.Equal(t, "commenter", responseComment["username"])
}

func TestCreateCommentUnknownPost(t *testing.T) {
	server := newTestServer(t)

	commenter := createTestUser(t, server.DB, "commenter", "commenter@example.com")

	r := gin.Default()
	r.POST("/api/v1/posts/:id/comments", AuthMiddlewareForTests(commenter.ID, false), server.CreateComment)

	w := doJSON(t, r, http.MethodPost, "/api/v1/posts/9999/comments", map[string]string{
		"body": "shouting into the void",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	server.DB.Model(&models.Comment{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestGetCommentsNewestFirst(t *testing.T) {
	server := newTestServer(t)

	poster := createTestUser(t, server.DB, "poster", "poster@example.com")
	post := createTestPost(t, server.DB, poster.ID, "Post", "content")

	for _, body := range []string{"first", "second", "third"} {
		assert.NoError(t, server.DB.Create(&models.Comment{Body: body, UserID: poster.ID, PostID: post.ID}).Error)
	}

	r := gin.Default()
	r.GET("/api/v1/posts/:id/comments", server.GetComments)

	w := doJSON(t, r, http.MethodGet, "/api/v1/posts/"+strconv.Itoa(int(post.ID))+"/comments", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	responseBody := parseBody(t, w)
	comments := responseBody["response"].([]interface{})
	assert.Len(t, comments, 3)

	newest := comments[0].(map[string]interface{})
	oldest := comments[2].(map[string]interface{})
	assert.Equal(t, "third", newest["body"])
	assert.Equal(t, "first", oldest["body"])
}

func TestUpdateCommentNonOwner(t *testing.T) {
	server := newTestServer(t)

	poster := createTestUser(t, server.DB, "poster", "poster@example.com")
	intruder := createTestUser(t, server.DB, "intruder", "intruder@example.com")
	post := createTestPost(t, server.DB, poster.ID, "Post", "content")

	comment := models.Comment{Body: "original", UserID: poster.ID, PostID: post.ID}
	assert.NoError(t, server.DB.Create(&comment).Error)

	r := gin.Default()
	r.PUT("/api/v1/comments/:id", AuthMiddlewareForTests(intruder.ID, false), server.UpdateComment)

	w := doJSON(t, r, http.MethodPut, "/api/v1/comments/"+strconv.Itoa(int(comment.ID)), map[string]string{
		"body": "defaced",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	stored := models.Comment{}
	assert.NoError(t, server.DB.Where("id = ?", comment.ID).Take(&stored).Error)
	assert.Equal(t, "original", stored.Body)
}

func TestUpdateCommentOwner(t *testing.T) {
	server := newTestServer(t)

	poster := createTestUser(t, server.DB, "poster", "poster@example.com")
	post := createTestPost(t, server.DB, poster.ID, "Post", "content")

	comment := models.Comment{Body: "tpyo", UserID: poster.ID, PostID: post.ID}
	assert.NoError(t, server.DB.Create(&comment).Error)

	r := gin.Default()
	r.PUT("/api/v1/comments/:id", AuthMiddlewareForTests(poster.ID, false), server.UpdateComment)

	w := doJSON(t, r, http.MethodPut, "/api/v1/comments/"+strconv.Itoa(int(comment.ID)), map[string]string{
		"body": "typo fixed",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	stored := models.Comment{}
	assert.NoError(t, server.DB.Where("id = ?", comment.ID).Take(&stored).Error)
	assert.Equal(t, "typo fixed", stored.Body)
}

func TestDeleteCommentTwice(t *testing.T) {
	server := newTestServer(t)

	poster := createTestUser(t, server.DB, "poster", "poster@example.com")
	post := createTestPost(t, server.DB, poster.ID, "Post", "content")

	comment := models.Comment{Body: "doomed", UserID: poster.ID, PostID: post.ID}
	assert.NoError(t, server.DB.Create(&comment).Error)

	r := gin.Default()
	r.DELETE("/api/v1/comments/:id", AuthMiddlewareForTests(poster.ID, false), server.DeleteComment)

	path := "/api/v1/comments/" + strconv.Itoa(int(comment.ID))

	w := doJSON(t, r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
