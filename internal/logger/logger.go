package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var defaultLogger = &logrus.Logger{
	Out:       os.Stderr,
	Formatter: &logrus.TextFormatter{FullTimestamp: true},
	Level:     logrus.InfoLevel,
}

// SetVerbose switches the default logger to Debug level.
func SetVerbose(verbose bool) {
	if verbose {
		defaultLogger.SetLevel(logrus.DebugLevel)
	}
}

// UseJSON switches to JSON output, used when running as a server.
func UseJSON() {
	defaultLogger.SetFormatter(&logrus.JSONFormatter{})
}

// Debugf logs a formatted message at Debug level.
func Debugf(format string, args ...any) {
	defaultLogger.Debugf(format, args...)
}

// Infof logs a formatted message at Info level.
func Infof(format string, args ...any) {
	defaultLogger.Infof(format, args...)
}

// Warnf logs a formatted message at Warn level.
func Warnf(format string, args ...any) {
	defaultLogger.Warnf(format, args...)
}

// Errorf logs a formatted message at Error level.
func Errorf(format string, args ...any) {
	defaultLogger.Errorf(format, args...)
}

// Fatalf logs a formatted message and exits.
func Fatalf(format string, args ...any) {
	defaultLogger.Fatalf(format, args...)
}
