// Package logger provides the structured logger used across scopefs. Console
// output always goes to stderr because stdout carries the MCP transport.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// LogLevel represents the available log levels
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Logger provides a structured logger instance configured for the application
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new structured logger with the specified level
func NewLogger(level LogLevel) *Logger {
	return NewLoggerWithConsoleWriter(level, os.Stderr)
}

// NewLoggerWithConsoleWriter builds a logger that writes console output to the
// given writer and structured text to the log file.
func NewLoggerWithConsoleWriter(level LogLevel, consoleWriter io.Writer) *Logger {
	var slogLevel slog.Level

	switch level {
	case LogLevelDebug:
		slogLevel = slog.LevelDebug
	case LogLevelInfo:
		slogLevel = slog.LevelInfo
	case LogLevelWarn:
		slogLevel = slog.LevelWarn
	case LogLevelError:
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	if consoleWriter == nil {
		consoleWriter = os.Stderr
	}
	consoleHandler := newPlainHandler(consoleWriter, slogLevel)
	fileHandler := newFileTextHandler(slogLevel)

	return &Logger{Logger: slog.New(newMultiHandler(consoleHandler, fileHandler))}
}

// WithComponent creates a logger with a component context for better tracing
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger: l.With("component", component),
	}
}

// Default logger instance - single instance for the entire application
var Default = NewLogger(LogLevelInfo)

// SetGlobalLogLevel updates the global default logger with a new log level.
// This affects all component loggers created after this call.
func SetGlobalLogLevel(level LogLevel) {
	Default = NewLogger(level)
}

// NewComponentLogger creates a new logger for a specific component
func NewComponentLogger(component string) *Logger {
	return Default.WithComponent(component)
}

// newFileTextHandler opens ~/.scopefs/logs/scopefs.log for append and returns
// a slog text handler writing to it.
func newFileTextHandler(level slog.Level) slog.Handler {
	home, _ := os.UserHomeDir()
	base := filepath.Join(home, ".scopefs", "logs")
	_ = os.MkdirAll(base, 0o755)
	path := filepath.Join(base, "scopefs.log")

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		// Fallback to stderr if the file cannot be opened
		return slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{Key: "time", Value: slog.StringValue(a.Value.Time().Format("15:04:05"))}
			}
			return a
		},
	}
	return slog.NewTextHandler(f, opts)
}
