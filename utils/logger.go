package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Logger provides logging functionality
type Logger struct {
	zlog zerolog.Logger
	file *os.File
}

// NewLogger creates a new logger writing structured output to the given file
func NewLogger(logPath string) (*Logger, error) {
	// Ensure directory exists
	dir := filepath.Dir(logPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Open log file
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	zlog := zerolog.New(file).With().Timestamp().Logger()

	return &Logger{
		zlog: zlog,
		file: file,
	}, nil
}

// NewConsoleLogger creates a logger that pretty-prints to the given writer
func NewConsoleLogger(out io.Writer) *Logger {
	if out == nil {
		out = os.Stdout
	}
	cw := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	return &Logger{zlog: zerolog.New(cw).With().Timestamp().Logger()}
}

// NewNopLogger creates a logger that discards everything
func NewNopLogger() *Logger {
	return &Logger{zlog: zerolog.Nop()}
}

// SetLevel sets the minimum level: debug, info, warn or error
func (l *Logger) SetLevel(level string) {
	switch level {
	case "debug":
		l.zlog = l.zlog.Level(zerolog.DebugLevel)
	case "warn":
		l.zlog = l.zlog.Level(zerolog.WarnLevel)
	case "error":
		l.zlog = l.zlog.Level(zerolog.ErrorLevel)
	default:
		l.zlog = l.zlog.Level(zerolog.InfoLevel)
	}
}

// Close closes the underlying log file
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) {
	l.zlog.Info().Msgf(format, v...)
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	l.zlog.Error().Msgf(format, v...)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) {
	l.zlog.Debug().Msgf(format, v...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, v ...interface{}) {
	l.zlog.Warn().Msgf(format, v...)
}

// GetLogPath returns the default log path
func GetLogPath() string {
	return filepath.Join(".", "logs", fmt.Sprintf("knowbase-%s.log", time.Now().Format("2006-01-02")))
}
