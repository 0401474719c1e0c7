// Package logger provides a simple logging interface backed by logrus
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger defines the logging interface
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})
	Info(v ...interface{})
	Infof(format string, v ...interface{})
	Warn(v ...interface{})
	Warnf(format string, v ...interface{})
	Error(v ...interface{})
	Errorf(format string, v ...interface{})
	Fatal(v ...interface{})
	Fatalf(format string, v ...interface{})
}

// NewWithOptions creates a logger at the given level writing to out
func NewWithOptions(level string, out io.Writer) Logger {
	l := logrus.New()
	l.SetLevel(ParseLevel(level))
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		DisableColors: out != os.Stdout && out != os.Stderr,
	})
	return l
}

// Discard returns a logger that drops everything, for tests
func Discard() Logger {
	return NewWithOptions("error", io.Discard)
}

// ParseLevel converts string log level to a logrus level, defaulting to info
func ParseLevel(levelStr string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// ValidLevel reports whether levelStr names a known level
func ValidLevel(levelStr string) bool {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "", "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}
