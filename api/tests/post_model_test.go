package tests

import (
	"net/http"
	"strconv"
	"testing"

	"Litfeed/api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCreatePost(t *testing.T) {
	server := newTestServer(t)

	user := createTestUser(t, server.DB, "poster", "poster@example.com")

	r := gin.Default()
	r.POST("/api/v1/posts", AuthMiddlewareForTests(user.ID, false), server.CreatePost)

	w := doJSON(t, r, http.MethodPost, "/api/v1/posts", map[string]string{
		"title":   "First post",
		"content": "Hello world",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	responseBody := parseBody(t, w)
	responsePost := responseBody["response"].(map[string]interface{})
	assert.Equal(t, "First post", responsePost["title"])
	assert.Equal(t, float64(user.ID), responsePost["author_id"], "author comes from the token, not the body")

	postAuthor := responsePost["author"].(map[string]interface{})
	assert.Equal(t, "poster", postAuthor["username"])
}

func TestCreatePostValidation(t *testing.T) {
	server := newTestServer(t)

	user := createTestUser(t, server.DB, "poster", "poster@example.com")

	r := gin.Default()
	r.POST("/api/v1/posts", AuthMiddlewareForTests(user.ID, false), server.CreatePost)

	w := doJSON(t, r, http.MethodPost, "/api/v1/posts", map[string]string{
		"content": "no title",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var count int64
	server.DB.Model(&models.Post{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestGetPostAfterDelete(t *testing.T) {
	server := newTestServer(t)

	user := createTestUser(t, server.DB, "poster", "poster@example.com")
	post := createTestPost(t, server.DB, user.ID, "Short lived", "content")

	r := gin.Default()
	r.GET("/api/v1/posts/:id", server.GetPost)
	r.DELETE("/api/v1/posts/:id", AuthMiddlewareForTests(user.ID, false), server.DeletePost)

	path := "/api/v1/posts/" + strconv.Itoa(int(post.ID))

	w := doJSON(t, r, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdatePostNonOwner(t *testing.T) {
	server := newTestServer(t)

	owner := createTestUser(t, server.DB, "owner", "owner@example.com")
	intruder := createTestUser(t, server.DB, "intruder", "intruder@example.com")
	post := createTestPost(t, server.DB, owner.ID, "Original title", "original content")

	r := gin.Default()
	r.PUT("/api/v1/posts/:id", AuthMiddlewareForTests(intruder.ID, false), server.UpdatePost)

	w := doJSON(t, r, http.MethodPut, "/api/v1/posts/"+strconv.Itoa(int(post.ID)), map[string]string{
		"title":   "Hijacked",
		"content": "hijacked content",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	stored := models.Post{}
	assert.NoError(t, server.DB.Where("id = ?", post.ID).Take(&stored).Error)
	assert.Equal(t, "Original title", stored.Title)
	assert.Equal(t, "original content", stored.Content)
}

func TestUpdatePostAsAdmin(t *testing.T) {
	server := newTestServer(t)

	owner := createTestUser(t, server.DB, "owner", "owner@example.com")
	admin := createTestUser(t, server.DB, "admin", "admin@example.com")
	post := createTestPost(t, server.DB, owner.ID, "Original title", "original content")

	r := gin.Default()
	r.PUT("/api/v1/posts/:id", AuthMiddlewareForTests(admin.ID, true), server.UpdatePost)

	w := doJSON(t, r, http.MethodPut, "/api/v1/posts/"+strconv.Itoa(int(post.ID)), map[string]string{
		"title":   "Moderated title",
		"content": "moderated content",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	stored := models.Post{}
	assert.NoError(t, server.DB.Where("id = ?", post.ID).Take(&stored).Error)
	assert.Equal(t, "Moderated title", stored.Title)
	assert.Equal(t, owner.ID, stored.AuthorID, "ownership does not move on admin edit")
}

func TestPatchPostContentOnly(t *testing.T) {
	server := newTestServer(t)

	owner := createTestUser(t, server.DB, "owner", "owner@example.com")

	r := gin.Default()
	r.POST("/api/v1/posts", AuthMiddlewareForTests(owner.ID, false), server.CreatePost)
	r.PATCH("/api/v1/posts/:id", AuthMiddlewareForTests(owner.ID, false), server.PatchPost)

	w := doJSON(t, r, http.MethodPost, "/api/v1/posts", map[string]string{
		"title":   "Tom & Jerry",
		"content": "old content",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	stored := models.Post{}
	assert.NoError(t, server.DB.Order("id desc").Take(&stored).Error)
	assert.Equal(t, "Tom &amp; Jerry", stored.Title)

	w = doJSON(t, r, http.MethodPatch, "/api/v1/posts/"+strconv.Itoa(int(stored.ID)), map[string]string{
		"content": "new content",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// The title was not in the patch, so the stored bytes must not move --
	// in particular it must not get escaped a second time.
	after := models.Post{}
	assert.NoError(t, server.DB.Where("id = ?", stored.ID).Take(&after).Error)
	assert.Equal(t, "Tom &amp; Jerry", after.Title)
	assert.Equal(t, "new content", after.Content)
}

func TestPatchPostWrongTypeTitle(t *testing.T) {
	server := newTestServer(t)

	owner := createTestUser(t, server.DB, "owner", "owner@example.com")
	post := createTestPost(t, server.DB, owner.ID, "Typed title", "content")

	r := gin.Default()
	r.PATCH("/api/v1/posts/:id", AuthMiddlewareForTests(owner.ID, false), server.PatchPost)

	w := doJSON(t, r, http.MethodPatch, "/api/v1/posts/"+strconv.Itoa(int(post.ID)), map[string]interface{}{
		"title": 42,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	stored := models.Post{}
	assert.NoError(t, server.DB.Where("id = ?", post.ID).Take(&stored).Error)
	assert.Equal(t, "Typed title", stored.Title)
}

func TestPatchPostEmptyBody(t *testing.T) {
	server := newTestServer(t)

	owner := createTestUser(t, server.DB, "owner", "owner@example.com")
	post := createTestPost(t, server.DB, owner.ID, "Untouched", "content")

	r := gin.Default()
	r.PATCH("/api/v1/posts/:id", AuthMiddlewareForTests(owner.ID, false), server.PatchPost)

	w := doJSON(t, r, http.MethodPatch, "/api/v1/posts/"+strconv.Itoa(int(post.ID)), map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPostsSearch(t *testing.T) {
	server := newTestServer(t)

	user := createTestUser(t, server.DB, "poster", "poster@example.com")
	createTestPost(t, server.DB, user.ID, "Gophers at work", "about gophers")
	createTestPost(t, server.DB, user.ID, "Unrelated", "nothing here")
	createTestPost(t, server.DB, user.ID, "More notes", "GOPHER sightings")

	r := gin.Default()
	r.GET("/api/v1/posts", server.GetPosts)

	w := doJSON(t, r, http.MethodGet, "/api/v1/posts?search=gopher", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	responseBody := parseBody(t, w)
	responseData := responseBody["response"].(map[string]interface{})
	posts := responseData["posts"].([]interface{})
	assert.Len(t, posts, 2, "search matches title and content, case insensitively")
}

func TestGetUserPosts(t *testing.T) {
	server := newTestServer(t)

	author := createTestUser(t, server.DB, "author", "author@example.com")
	other := createTestUser(t, server.DB, "other", "other@example.com")
	createTestPost(t, server.DB, author.ID, "Mine 1", "c")
	createTestPost(t, server.DB, author.ID, "Mine 2", "c")
	createTestPost(t, server.DB, other.ID, "Not mine", "c")

	r := gin.Default()
	r.GET("/api/v1/users/:id/posts", server.GetUserPosts)

	w := doJSON(t, r, http.MethodGet, "/api/v1/users/"+strconv.Itoa(int(author.ID))+"/posts", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	responseBody := parseBody(t, w)
	posts := responseBody["response"].([]interface{})
	assert.Len(t, posts, 2)

	// Unknown user is a 404, not an empty list
	w = doJSON(t, r, http.MethodGet, "/api/v1/users/9999/posts", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeletePostCascades(t *testing.T) {
	server := newTestServer(t)

	owner := createTestUser(t, server.DB, "owner", "owner@example.com")
	fan := createTestUser(t, server.DB, "fan", "fan@example.com")
	post := createTestPost(t, server.DB, owner.ID, "Doomed", "content")

	assert.NoError(t, server.DB.Create(&models.Comment{Body: "nice", UserID: fan.ID, PostID: post.ID}).Error)
	assert.NoError(t, server.DB.Create(&models.Like{UserID: fan.ID, PostID: post.ID}).Error)

	r := gin.Default()
	r.DELETE("/api/v1/posts/:id", AuthMiddlewareForTests(owner.ID, false), server.DeletePost)

	w := doJSON(t, r, http.MethodDelete, "/api/v1/posts/"+strconv.Itoa(int(post.ID)), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	server.DB.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&count)
	assert.Equal(t, int64(0), count)
	server.DB.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}
