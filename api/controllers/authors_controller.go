package controllers

import (
	"encoding/json"
	"errors"
	"html"
	"io"
	"net/http"
	"strings"

	"Litfeed/api/models"
	"Litfeed/api/utils/formaterror"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateAuthor registers a new book author. Any authenticated user may do
// this; authors are catalog data, not user-owned content.
func (server *Server) CreateAuthor(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Unable to get request",
		})
		return
	}

	author := models.Author{}
	if err := json.Unmarshal(body, &author); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}

	author.Prepare()
	errorMessages := author.Validate()
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}

	authorCreated, err := author.SaveAuthor(server.DB)
	if err != nil {
		formattedError := formaterror.FormatError(err.Error())
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  formattedError,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":   http.StatusCreated,
		"response": authorToResponse(authorCreated),
	})
}

// GetAuthors lists authors with optional search on name and ordering.
func (server *Server) GetAuthors(c *gin.Context) {
	page, limit, offset := parsePageParams(c)
	search := strings.TrimSpace(c.Query("search"))
	order := strings.TrimSpace(c.Query("order"))

	author := models.Author{}
	authors, total, err := author.FindAllAuthors(server.DB, search, order, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch authors"})
		return
	}

	authorResponses := make([]AuthorDTO, len(*authors))
	for i := range *authors {
		authorResponses[i] = authorToResponse(&(*authors)[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"authors":    authorResponses,
			"pagination": buildPagination(page, limit, total),
		},
	})
}

// GetAuthor returns one author with their books nested.
func (server *Server) GetAuthor(c *gin.Context) {
	aid, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author := models.Author{}
	authorGotten, err := author.FindAuthorByID(server.DB, aid)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Author not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": authorToResponse(authorGotten),
	})
}

// UpdateAuthor is the full update: every mutable field is required.
func (server *Server) UpdateAuthor(c *gin.Context) {
	aid, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	existing := models.Author{}
	if _, err := existing.FindAuthorByID(server.DB, aid); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Author not found"})
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

	author := models.Author{}
	if err := json.Unmarshal(body, &author); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}

	author.Prepare()
	errorMessages := author.Validate()
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}

	author.ID = aid
	updated, err := author.UpdateAuthor(server.DB, map[string]interface{}{
		"name": author.Name,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to update author"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": authorToResponse(updated),
	})
}

// PatchAuthor is the partial update: only supplied fields change.
func (server *Server) PatchAuthor(c *gin.Context) {
	aid, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	existing := models.Author{}
	if _, err := existing.FindAuthorByID(server.DB, aid); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Author not found"})
		return
	}

	var requestBody map[string]interface{}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot parse request body"})
		return
	}

	// Only supplied keys are written; stored values are never rewritten.
	merged := models.Author{ID: aid, Name: existing.Name}
	fields := map[string]interface{}{}

	if raw, present := requestBody["name"]; present {
		name, ok := raw.(string)
		if !ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"status": http.StatusUnprocessableEntity,
				"error":  map[string]string{"Invalid_name": "Name must be a string"},
			})
			return
		}
		merged.Name = html.EscapeString(strings.TrimSpace(name))
		fields["name"] = merged.Name
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

	updated, err := merged.UpdateAuthor(server.DB, fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to update author"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": authorToResponse(updated),
	})
}

// DeleteAuthor removes an author and cascades their books.
func (server *Server) DeleteAuthor(c *gin.Context) {
	aid, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author := models.Author{ID: aid}
	rows, err := author.DeleteAuthor(server.DB)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to delete author"})
		return
	}
	if rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Author not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Author deleted",
	})
}
