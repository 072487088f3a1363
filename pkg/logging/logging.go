package logging

import (
	"os"

	"github.com/sirupsen/logrus"

	"phone-dialer/pkg/config"
)

// New builds the process logger. Production logs are JSON, everything else is text.
func New(level logrus.Level, env config.AppEnv) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetLevel(level)

	if env == config.ProductionEnv {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}
