package controllers

import (
	"encoding/json"
	"html"
	"io"
	"net/http"
	"strings"

	"Litfeed/api/models"
	"Litfeed/api/utils/formaterror"

	"github.com/gin-gonic/gin"
)

// CreateBook persists a new book. The author reference must resolve to an
// existing Author; otherwise the request fails with a field error and
// nothing is written.
func (server *Server) CreateBook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Unable to get request",
		})
		return
	}

	book := models.Book{}
	if err := json.Unmarshal(body, &book); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}

	book.Prepare()
	errorMessages := book.Validate()
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}

	bookCreated, err := book.SaveBook(server.DB)
	if err != nil {
		if models.IsAuthorNotFound(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"status": http.StatusUnprocessableEntity,
				"error":  map[string]string{"Invalid_author": "Author does not exist"},
			})
			return
		}
		formattedError := formaterror.FormatError(err.Error())
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  formattedError,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":   http.StatusCreated,
		"response": bookToResponse(bookCreated, true),
	})
}

// GetBooks lists books under filter/search/order query parameters.
func (server *Server) GetBooks(c *gin.Context) {
	page, limit, offset := parsePageParams(c)

	filter, err := models.ParseBookFilter(c.Query)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	book := models.Book{}
	books, total, err := book.FindAllBooks(server.DB, filter, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch books"})
		return
	}

	bookResponses := make([]BookDTO, len(*books))
	for i := range *books {
		bookResponses[i] = bookToResponse(&(*books)[i], true)
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"books":      bookResponses,
			"pagination": buildPagination(page, limit, total),
		},
	})
}

// GetBook returns one book with its author nested.
func (server *Server) GetBook(c *gin.Context) {
	bid, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book := models.Book{}
	bookGotten, err := book.FindBookByID(server.DB, bid)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": bookToResponse(bookGotten, true),
	})
}

// UpdateBook is the full update: title, publication year and author are all
// required and all rewritten.
func (server *Server) UpdateBook(c *gin.Context) {
	bid, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	existing := models.Book{}
	if _, err := existing.FindBookByID(server.DB, bid); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
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

	book := models.Book{}
	if err := json.Unmarshal(body, &book); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}

	book.Prepare()
	errorMessages := book.Validate()
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}

	book.ID = bid
	updated, err := book.UpdateBook(server.DB, map[string]interface{}{
		"title":            book.Title,
		"publication_year": book.PublicationYear,
		"author_id":        book.AuthorID,
	})
	if err != nil {
		if models.IsAuthorNotFound(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"status": http.StatusUnprocessableEntity,
				"error":  map[string]string{"Invalid_author": "Author does not exist"},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to update book"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": bookToResponse(updated, true),
	})
}

// PatchBook is the partial update: only fields present in the body are
// written; everything else keeps its stored value.
func (server *Server) PatchBook(c *gin.Context) {
	bid, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	existing := models.Book{}
	if _, err := existing.FindBookByID(server.DB, bid); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}

	var requestBody map[string]interface{}
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot parse request body"})
		return
	}

	// Merge the patch over the stored record so validation sees the final
	// state. Only the supplied keys are written; a key carrying the wrong
	// JSON type is rejected, not ignored.
	merged := models.Book{
		Title:           existing.Title,
		PublicationYear: existing.PublicationYear,
		AuthorID:        existing.AuthorID,
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
	if raw, present := requestBody["publication_year"]; present {
		year, ok := raw.(float64)
		if !ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"status": http.StatusUnprocessableEntity,
				"error":  map[string]string{"Invalid_publication_year": "Publication year must be a number"},
			})
			return
		}
		merged.PublicationYear = int(year)
		fields["publication_year"] = merged.PublicationYear
	}
	if raw, present := requestBody["author_id"]; present {
		aid, ok := raw.(float64)
		if !ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"status": http.StatusUnprocessableEntity,
				"error":  map[string]string{"Invalid_author": "Author id must be a number"},
			})
			return
		}
		merged.AuthorID = uint(aid)
		fields["author_id"] = merged.AuthorID
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

	merged.ID = bid
	updated, err := merged.UpdateBook(server.DB, fields)
	if err != nil {
		if models.IsAuthorNotFound(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"status": http.StatusUnprocessableEntity,
				"error":  map[string]string{"Invalid_author": "Author does not exist"},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to update book"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": bookToResponse(updated, true),
	})
}

// DeleteBook removes one book. A second delete of the same id reports
// not-found.
func (server *Server) DeleteBook(c *gin.Context) {
	bid, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book := models.Book{ID: bid}
	rows, err := book.DeleteBook(server.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to delete book"})
		return
	}
	if rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Book deleted",
	})
}
