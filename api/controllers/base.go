package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"Litfeed/api/middlewares"
	"Litfeed/api/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// ===============================
// SECURE ADMIN SEEDING
// ===============================
func seedAdmin(db *gorm.DB) error {
	adminEmail := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	adminPassword := strings.TrimSpace(os.Getenv("ADMIN_PASSWORD"))

	// If environment vars aren't provided, do NOTHING.
	if adminEmail == "" || adminPassword == "" {
		logrus.Info("seedAdmin: ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin creation")
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", adminEmail).First(&existing).Error

	// If admin does not exist, create them
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logrus.WithField("email", adminEmail).Info("seedAdmin: creating initial admin")

		admin := models.User{
			Username: strings.Split(adminEmail, "@")[0],
			Email:    adminEmail,
			Password: adminPassword,
			IsAdmin:  true,
		}

		admin.Prepare()

		if msgs := admin.Validate(""); len(msgs) > 0 {
			logrus.WithField("errors", msgs).Warn("seedAdmin: validation failed")
			return nil
		}

		_, err = admin.SaveUser(db)
		if err != nil {
			logrus.WithError(err).Error("seedAdmin: failed to create admin")
			return err
		}

		return nil
	}

	// If admin exists, ensure they stay admin
	if err == nil && !existing.IsAdmin {
		logrus.WithField("email", adminEmail).Info("seedAdmin: restoring admin flag")
		return db.Model(&existing).Update("is_admin", true).Error
	}

	return err
}

// ===============================
// SERVER INITIALIZATION
// ===============================
func (server *Server) Initialize(DbUser, DbPassword, DbPort, DbHost, DbName string) {
	var dsn string

	if strings.EqualFold(os.Getenv("APP_ENV"), "production") {
		dsn = os.Getenv("DATABASE_URL")
		if dsn != "" && !strings.Contains(dsn, "sslmode=") {
			if strings.Contains(dsn, "?") {
				dsn += "&sslmode=require"
			} else {
				dsn += "?sslmode=require"
			}
		}
	} else {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			DbHost, DbUser, DbPassword, DbName, DbPort,
		)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("Cannot connect to Postgres: %v", err)
	}
	server.DB = db

	// Auto Migrations
	if err := server.DB.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Author{},
		&models.Book{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.ResetPassword{},
	); err != nil {
		logrus.Fatalf("Error migrating database: %v", err)
	}
	if err := ensureFollowConstraints(server.DB); err != nil {
		logrus.Warnf("follow constraints not ensured: %v", err)
	}
	if err := ensureFollowCounterDefaults(server.DB); err != nil {
		logrus.Warnf("follow counters not normalized: %v", err)
	}

	// SECURE ADMIN CREATION
	if err := seedAdmin(server.DB); err != nil {
		logrus.Errorf("error seeding admin user: %v", err)
	}

	server.Router = gin.Default()
	server.Router.Use(middlewares.CORSMiddleware())
	server.Router.Use(middlewares.RateLimitMiddleware())
	server.Router.Use(middlewares.MetricsMiddleware())
	server.initializeRoutes()
}

func (server *Server) Run(addr string) {
	logrus.Fatal(http.ListenAndServe(addr, server.Router))
}

func ensureFollowConstraints(db *gorm.DB) error {
	var count int64
	if err := db.Raw(
		"SELECT COUNT(1) FROM pg_constraint WHERE conname = ?",
		"follows_no_self_follow",
	).Scan(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		if err := db.Exec(
			"ALTER TABLE follows ADD CONSTRAINT follows_no_self_follow CHECK (follower_id <> followed_id)",
		).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensureFollowCounterDefaults(db *gorm.DB) error {
	if err := db.Exec(
		"UPDATE users SET followers_count = 0 WHERE followers_count IS NULL",
	).Error; err != nil {
		return err
	}
	if err := db.Exec(
		"UPDATE users SET following_count = 0 WHERE following_count IS NULL",
	).Error; err != nil {
		return err
	}
	return nil
}
