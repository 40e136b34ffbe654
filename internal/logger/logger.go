// Package logger holds the shared structured logger. Synthesis results go
// to stdout; the logger only carries diagnostics on stderr.
package logger

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Logger is the process-wide logger instance.
var Logger *log.Logger

func init() {
	Logger = log.New(os.Stderr)
	Logger.SetTimeFormat("")
	Logger.SetLevel(log.WarnLevel)
}

// Configure sets the log level. An empty level falls back to the
// GERM_LOG_LEVEL environment variable, then to warn.
func Configure(level string) {
	if level == "" {
		level = os.Getenv("GERM_LOG_LEVEL")
	}
	Logger.SetLevel(parseLevel(level))
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}

// Debug logs at debug level with optional key-value pairs.
func Debug(msg string, kv ...interface{}) { Logger.Debug(msg, kv...) }

// Warn logs at warn level with optional key-value pairs.
func Warn(msg string, kv ...interface{}) { Logger.Warn(msg, kv...) }
