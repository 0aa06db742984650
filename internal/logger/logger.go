package logger

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// New инициализирует логгер. В релизе JSON на уровне info, иначе текст на уровне debug.
// LOG_LEVEL, если задан и распознан, перекрывает уровень в обоих случаях.
func New(output io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(output)
	l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	l.SetLevel(logrus.InfoLevel)

	if os.Getenv("APP_ENV") != "release" {
		l.SetLevel(logrus.DebugLevel)
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if level, err := logrus.ParseLevel(raw); err == nil {
			l.SetLevel(level)
		} else {
			l.WithField("value", raw).Warn("unknown LOG_LEVEL, keeping default")
		}
	}

	return l
}
