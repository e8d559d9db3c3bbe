// Package logging wraps charmbracelet/log with a process-wide default
// logger and the field names used across vellum.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // One process-wide logger is intentional.
var defaultLogger = New("info")

// New creates a logger writing to stderr at the given level. Levels are
// "debug", "info", "warn", and "error"; anything else means "info".
func New(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	logger.SetLevel(parseLevel(level))
	return logger
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// NewInteractive creates a logger for user-facing command output written
// to w. It reports at info level with no timestamps.
func NewInteractive(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	logger.SetLevel(log.InfoLevel)
	return logger
}

// Default returns the process-wide logger.
func Default() *log.Logger {
	return defaultLogger
}

// SetDefault replaces the process-wide logger. A nil logger is ignored.
func SetDefault(logger *log.Logger) {
	if logger != nil {
		defaultLogger = logger
	}
}

// SetLevel updates the level of the process-wide logger.
func SetLevel(level string) {
	defaultLogger.SetLevel(parseLevel(level))
}
