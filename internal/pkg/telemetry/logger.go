package telemetry

import (
	config "github.com/commercelab/microshop/configs"
	"github.com/sirupsen/logrus"
)

// NewLogger builds the process logger from config. Unknown levels fall back
// to info rather than failing startup.
func NewLogger(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
