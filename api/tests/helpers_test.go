package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"Litfeed/api/controllers"
	"Litfeed/api/models"
	"Litfeed/api/utils/httpctx"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer wires a Server against an in-memory SQLite database with
// the full schema migrated.
func newTestServer(t *testing.T) *controllers.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}

	server := &controllers.Server{DB: db}
	err = db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Author{},
		&models.Book{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.ResetPassword{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate tables: %v", err)
	}
	return server
}

// AuthMiddlewareForTests simulates an authenticated user by setting the
// identity in the context, bypassing token parsing.
func AuthMiddlewareForTests(userID uint, isAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		httpctx.SetCurrentUser(c, userID, isAdmin)
		c.Next()
	}
}

// createTestUser inserts a user directly; the model hook hashes the
// password on create.
func createTestUser(t *testing.T, db *gorm.DB, username, email string) *models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    email,
		Password: "password123",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return &user
}

func createTestAuthor(t *testing.T, db *gorm.DB, name string) *models.Author {
	t.Helper()
	author := models.Author{Name: name}
	if err := db.Create(&author).Error; err != nil {
		t.Fatalf("Failed to create test author: %v", err)
	}
	return &author
}

func createTestPost(t *testing.T, db *gorm.DB, authorID uint, title, content string) *models.Post {
	t.Helper()
	post := models.Post{Title: title, Content: content, AuthorID: authorID}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("Failed to create test post: %v", err)
	}
	return &post
}

// doJSON performs a request with an optional JSON body and returns the
// recorder.
func doJSON(t *testing.T, r *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("Error creating request body: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, body)
	if err != nil {
		t.Fatalf("Error creating HTTP request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// parseBody unmarshals a recorder body into a generic map.
func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("Error unmarshalling response body: %v", err)
	}
	return out
}
