package logger

import (
	"github.com/sirupsen/logrus"

	"paylock/internal/config"
)

func New(cfg config.Log) *logrus.Logger {
	log := logrus.New()

	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}
