// Package logger provides the process-wide logging facade used across
// cockpit. It wraps logrus behind printf-style package functions so call
// sites stay short and the backend stays swappable.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

var log = newDefault()

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	return l
}

// Init configures the global logger. level is a logrus level name
// ("debug", "info", "warn", "error"); an empty or invalid level keeps the
// default. logFile, when non-empty, appends output to that file in addition
// to stderr.
func Init(level, logFile string) error {
	if level != "" {
		if lv, err := logrus.ParseLevel(level); err == nil {
			log.SetLevel(lv)
		}
	}

	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
			return err
		}
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		log.SetOutput(io.MultiWriter(os.Stderr, f))
	}

	return nil
}

// SetOutput redirects log output, primarily for tests.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

func Debug(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

func Info(format string, args ...interface{}) {
	log.Infof(format, args...)
}

func Warn(format string, args ...interface{}) {
	log.Warnf(format, args...)
}

func Error(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

func Fatal(format string, args ...interface{}) {
	log.Fatalf(format, args...)
}
