package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Init configures the process-wide logrus logger. Level comes from
// LOG_LEVEL; production gets JSON lines so the platform log drain can
// parse them, everything else stays human-readable.
func Init() {
	logrus.SetOutput(os.Stdout)

	if strings.EqualFold(os.Getenv("APP_ENV"), "production") {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
