package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New builds the process logger. Prod-like environments get JSON lines,
// everything else gets human readable text.
func New(level string, jsonFormat bool) *logrus.Logger {
	return NewWithOutput(os.Stdout, level, jsonFormat)
}

func NewWithOutput(out io.Writer, level string, jsonFormat bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	if jsonFormat {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log
}
