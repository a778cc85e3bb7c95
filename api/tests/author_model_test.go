package tests

import (
	"net/http"
	"strconv"
	"testing"

	"Litfeed/api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCreateAuthor(t *testing.T) {
	server := newTestServer(t)
	r := gin.Default()
	r.POST("/api/v1/authors", AuthMiddlewareForTests(1, false), server.CreateAuthor)

	w := doJSON(t, r, http.MethodPost, "/api/v1/authors", map[string]string{
		"name": "Ursula K. Le Guin",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	responseBody := parseBody(t, w)
	responseAuthor := responseBody["response"].(map[string]interface{})
	assert.Equal(t, "Ursula K. Le Guin", responseAuthor["name"])

	// Name is required
	w = doJSON(t, r, http.MethodPost, "/api/v1/authors", map[string]string{})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPatchAuthorRename(t *testing.T) {
	server := newTestServer(t)
	r := gin.Default()
	r.PATCH("/api/v1/authors/:id", AuthMiddlewareForTests(1, false), server.PatchAuthor)

	author := createTestAuthor(t, server.DB, "Ursla K. Le Guin")

	w := doJSON(t, r, http.MethodPatch, "/api/v1/authors/"+strconv.Itoa(int(author.ID)), map[string]string{
		"name": "Ursula K. Le Guin",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	stored := models.Author{}
	assert.NoError(t, server.DB.Where("id = ?", author.ID).Take(&stored).Error)
	assert.Equal(t, "Ursula K. Le Guin", stored.Name)
}

func TestPatchAuthorEmptyBody(t *testing.T) {
	server := newTestServer(t)
	r := gin.Default()
	r.PATCH("/api/v1/authors/:id", AuthMiddlewareForTests(1, false), server.PatchAuthor)

	author := createTestAuthor(t, server.DB, "Simon & Garfunkel")

	w := doJSON(t, r, http.MethodPatch, "/api/v1/authors/"+strconv.Itoa(int(author.ID)), map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A patch carrying no fields must not rewrite the stored name
	stored := models.Author{}
	assert.NoError(t, server.DB.Where("id = ?", author.ID).Take(&stored).Error)
	assert.Equal(t, "Simon & Garfunkel", stored.Name)
}

func TestPatchAuthorWrongTypeName(t *testing.T) {
	server := newTestServer(t)
	r := gin.Default()
	r.PATCH("/api/v1/authors/:id", AuthMiddlewareForTests(1, false), server.PatchAuthor)

	author := createTestAuthor(t, server.DB, "Typed Name")

	w := doJSON(t, r, http.MethodPatch, "/api/v1/authors/"+strconv.Itoa(int(author.ID)), map[string]interface{}{
		"name": 42,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	stored := models.Author{}
	assert.NoError(t, server.DB.Where("id = ?", author.ID).Take(&stored).Error)
	assert.Equal(t, "Typed Name", stored.Name)
}

func TestGetAuthorsSearchAndOrder(t *testing.T) {
	server := newTestServer(t)
	r := gin.Default()
	r.GET("/api/v1/authors", server.GetAuthors)

	createTestAuthor(t, server.DB, "Italo Calvino")
	createTestAuthor(t, server.DB, "Ursula K. Le Guin")
	createTestAuthor(t, server.DB, "Stanislaw Lem")

	w := doJSON(t, r, http.MethodGet, "/api/v1/authors?search=le", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	responseBody := parseBody(t, w)
	responseData := responseBody["response"].(map[string]interface{})
	authors := responseData["authors"].([]interface{})
	assert.Len(t, authors, 2)

	// Default ordering is name ascending
	first := authors[0].(map[string]interface{})
	assert.Equal(t, "Stanislaw Lem", first["name"])
}
