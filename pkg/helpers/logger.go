package helpers

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the shared logrus logger. Development gets colored text at
// debug level; everything else gets JSON at info level so the log shipper can
// index trigger and delivery events.
func NewLogger(service, env string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	switch env {
	case "development":
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	logger.WithFields(logrus.Fields{
		"service": service,
		"env":     env,
	}).Info("logger ready")
	return logger
}
