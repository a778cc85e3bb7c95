package tests

import (
	"net/http"
	"strconv"
	"testing"

	"Litfeed/api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCreateBook(t *testing.T) {
	server := newTestServer(t)
	r := gin.Default()
	r.POST("/api/v1/books", AuthMiddlewareForTests(1, false), server.CreateBook)

	author := createTestAuthor(t, server.DB, "Ursula K. Le Guin")

	w := doJSON(t, r, http.MethodPost, "/api/v1/books", map[string]interface{}{
		"title":            "The Dispossessed",
		"publication_year": 1974,
		"author_id":        author.ID,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	responseBody := parseBody(t, w)
	responseBook := responseBody["response"].(map[string]interface{})
	assert.Equal(t, "The Dispossessed", responseBook["title"])
	assert.Equal(t, float64(1974), responseBook["publication_year"])

	nestedAuthor := responseBook["author"].(map[string]interface{})
	assert.Equal(t, "Ursula K. Le Guin", nestedAuthor["name"])
}

func TestCreateBookUnknownAuthor(t *testing.T) {
	server := newTestServer(t)
	r := gin.Default()
	r.POST("/api/v1/books", AuthMiddlewareForTests(1, false), server.CreateBook)

	w := doJSON(t, r, http.MethodPost, "/api/v1/books", map[string]interface{}{
		"title":            "Orphan Book",
		"publication_year": 2001,
		"author_id":        9999,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	responseBody := parseBody(t, w)
	errorMessages := responseBody["error"].(map[string]interface{})
	assert.Contains(t, errorMessages, "Invalid_author")

	// Nothing was written
	var count int64
	server.DB.Model(&models.Book{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateBookValidation(t *testing.T) {
	server := newTestServer(t)
	r := gin.Default()
	r.POST("/api/v1/books", AuthMiddlewareForTests(1, false), server.CreateBook)

	author := createTestAuthor(t, server.DB, "Italo Calvino")

	// Missing title
	w := doJSON(t, r, http.MethodPost, "/api/v1/books", map[string]interface{}{
		"publication_year": 1972,
		"author_id":        author.ID,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Future publication year
	w = doJSON(t, r, http.MethodPost, "/api/v1/books", map[string]interface{}{
		"title":            "From the Future",
		"publication_year": 3000,
		"author_id":        author.ID,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPatchBookTitleOnly(t *testing.T) {
	server := newTestServer(t)
	r := gin.Default()
	r.PATCH("/api/v1/books/:id", AuthMiddlewareForTests(1, false), server.PatchBook)

	author := createTestAuthor(t, server.DB, "Ursula K. Le Guin")
	book := models.Book{Title: "The Disposessed", PublicationYear: 1974, AuthorID: author.ID}
	err := server.DB.Create(&book).Error
	assert.NoError(t, err)

	w := doJSON(t, r, http.MethodPatch, "/api/v1/books/"+strconv.Itoa(int(book.ID)), map[string]interface{}{
		"title": "The Dispossessed",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	updated := models.Book{}
	err = server.DB.Where("id = ?", book.ID).Take(&updated).Error
	assert.NoError(t, err)
	assert.Equal(t, "The Dispossessed", updated.Title)
	assert.Equal(t, 1974, updated.PublicationYear, "untouched fields keep their value")
	assert.Equal(t, author.ID, updated.AuthorID)
}

func TestPatchBookWrongTypeTitle(t *testing.T) {
	server := newTestServer(t)
	r := gin.Default()
	r.PATCH("/api/v1/books/:id", AuthMiddlewareForTests(1, false), server.PatchBook)

	author := createTestAuthor(t, server.DB, "Author")
	book := models.Book{Title: "Typed Title", PublicationYear: 2000, AuthorID: author.ID}
	assert.NoError(t, server.DB.Create(&book).Error)

	// A key present with the wrong JSON type is rejected, not ignored
	w := doJSON(t, r, http.MethodPatch, "/api/v1/books/"+strconv.Itoa(int(book.ID)), map[string]interface{}{
		"title": 42,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, r, http.MethodPatch, "/api/v1/books/"+strconv.Itoa(int(book.ID)), map[string]interface{}{
		"publication_year": "not-a-year",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	stored := models.Book{}
	assert.NoError(t, server.DB.Where("id = ?", book.ID).Take(&stored).Error)
	assert.Equal(t, "Typed Title", stored.Title)
	assert.Equal(t, 2000, stored.PublicationYear)
}

func TestPatchBookEmptyBody(t *testing.T) {
	server := newTestServer(t)
	r := gin.Default()
	r.PATCH("/api/v1/books/:id", AuthMiddlewareForTests(1, false), server.PatchBook)

	author := createTestAuthor(t, server.DB, "Author")
	book := models.Book{Title: "Unchanged", PublicationYear: 1990, AuthorID: author.ID}
	assert.NoError(t, server.DB.Create(&book).Error)

	w := doJSON(t, r, http.MethodPatch, "/api/v1/books/"+strconv.Itoa(int(book.ID)), map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBooksFilterByYear(t *testing.T) {
	server := newTestServer(t)
	r := gin.Default()
	r.GET("/api/v1/books", server.GetBooks)

	author := createTestAuthor(t, server.DB, "Various")
	for _, fixture := range []struct {
		title string
		year  int
	}{
		{"Book A", 2023},
		{"Book B", 2021},
		{"Book C", 2023},
		{"Book D", 2024},
	} {
		book := models.Book{Title: fixture.title, PublicationYear: fixture.year, AuthorID: author.ID}
		assert.NoError(t, server.DB.Create(&book).Error)
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/books?publication_year=2023", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	responseBody := parseBody(t, w)
	responseData := responseBody["response"].(map[string]interface{})
	books := responseData["books"].([]interface{})
	assert.Len(t, books, 2)
	for _, raw := range books {
		book := raw.(map[string]interface{})
		assert.Equal(t, float64(2023), book["publication_year"])
	}
}

func TestGetBooksYearRange(t *testing.T) {
	server := newTestServer(t)
	r := gin.Default()
	r.GET("/api/v1/books", server.GetBooks)

	author := createTestAuthor(t, server.DB, "Various")
	for year := 2018; year <= 2024; year++ {
		book := models.Book{Title: "Year " + strconv.Itoa(year), PublicationYear: year, AuthorID: author.ID}
		assert.NoError(t, server.DB.Create(&book).Error)
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/books?min_year=2020&max_year=2022", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	responseBody := parseBody(t, w)
	responseData := responseBody["response"].(map[string]interface{})
	books := responseData["books"].([]interface{})
	assert.Len(t, books, 3)
}

func TestDeleteBookTwice(t *testing.T) {
	server := newTestServer(t)
	r := gin.Default()
	r.DELETE("/api/v1/books/:id", AuthMiddlewareForTests(1, false), server.DeleteBook)

	author := createTestAuthor(t, server.DB, "Author")
	book := models.Book{Title: "Doomed", PublicationYear: 2000, AuthorID: author.ID}
	assert.NoError(t, server.DB.Create(&book).Error)

	path := "/api/v1/books/" + strconv.Itoa(int(book.ID))

	w := doJSON(t, r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteAuthorCascadesBooks(t *testing.T) {
	server := newTestServer(t)
	r := gin.Default()
	r.DELETE("/api/v1/authors/:id", AuthMiddlewareForTests(1, false), server.DeleteAuthor)

	author := createTestAuthor(t, server.DB, "Doomed Author")
	keeper := createTestAuthor(t, server.DB, "Kept Author")
	assert.NoError(t, server.DB.Create(&models.Book{Title: "Gone 1", PublicationYear: 1999, AuthorID: author.ID}).Error)
	assert.NoError(t, server.DB.Create(&models.Book{Title: "Gone 2", PublicationYear: 2001, AuthorID: author.ID}).Error)
	assert.NoError(t, server.DB.Create(&models.Book{Title: "Kept", PublicationYear: 2010, AuthorID: keeper.ID}).Error)

	w := doJSON(t, r, http.MethodDelete, "/api/v1/authors/"+strconv.Itoa(int(author.ID)), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	server.DB.Model(&models.Book{}).Where("author_id = ?", author.ID).Count(&count)
	assert.Equal(t, int64(0), count)
	server.DB.Model(&models.Book{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
