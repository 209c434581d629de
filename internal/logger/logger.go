package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/td0m/taskclient/internal/config"
)

// New builds the logger every component gets a child of.
// fallback receives the output when no file is configured.
func New(cfg config.LogConfig, fallback io.Writer) (*logrus.Logger, io.Closer, error) {
	l := logrus.New()
	var closer io.Closer = nopCloser{}

	switch {
	case !cfg.Enabled:
		l.SetOutput(io.Discard)
	case cfg.File != "":
		f, err := os.OpenFile(cfg.File, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		l.SetOutput(f)
		closer = f
	default:
		l.SetOutput(fallback)
	}

	if cfg.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "ts",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level := logrus.InfoLevel
	if cfg.Level != "" {
		lvl, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return nil, nil, err
		}
		level = lvl
	}
	l.SetLevel(level)
	return l, closer, nil
}

// For tags entries with the component that wrote them
func For(l logrus.FieldLogger, component string) logrus.FieldLogger {
	return l.WithField("component", component)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
