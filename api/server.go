package api

import (
	"os"
	"strings"

	"Litfeed/api/controllers"
	"Litfeed/api/logger"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var server = controllers.Server{}

func init() {
	// Load .env only outside production; deployed config comes from the
	// platform environment.
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}
}

func Run() {
	logger.Init()

	// In prod, Initialize uses DATABASE_URL; in dev, the DB_* pieces.
	server.Initialize(
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_NAME"),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = os.Getenv("API_PORT")
		if port == "" {
			port = "8888"
		}
	}

	addr := ":" + strings.TrimSpace(port)
	logrus.Infof("Listening on %s", addr)
	server.Run(addr)
}
