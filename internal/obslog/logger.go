// Package obslog provides the structured logger used across the
// simulation binary: logrus, JSON-formatted, level configurable at startup.
package obslog

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds a logrus logger at the given level, writing JSON lines to
// stdout. An unrecognized level falls back to info.
func New(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetLevel(parseLevel(level))
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	return logger
}

func parseLevel(level string) logrus.Level {
	switch level {
	case "debug":
		return logrus.DebugLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
