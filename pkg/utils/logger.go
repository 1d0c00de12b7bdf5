package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the service-wide logger. It returns an entry rather than
// a bare logger so the service field rides on every line.
func NewLogger(service string) *logrus.Entry {
	logger := logrus.New()

	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "warn":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}

	if os.Getenv("ENVIRONMENT") == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	return logger.WithField("service", service)
}
