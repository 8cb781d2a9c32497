// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"go.trai.ch/zerr"
)

// Logger implements ports.Logger using log/slog with a pretty handler.
type Logger struct {
	logger *slog.Logger
}

// New creates a Logger writing to stderr.
func New() *Logger {
	return NewWithWriter(os.Stderr)
}

// NewWithWriter creates a Logger writing to w. Used for testing.
func NewWithWriter(w io.Writer) *Logger {
	handler := NewPrettyHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return &Logger{logger: slog.New(handler)}
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.logger.Warn(msg)
}

// Error logs an error, surfacing zerr metadata as attributes.
func (l *Logger) Error(err error) {
	var zErr *zerr.Error
	if errors.As(err, &zErr) {
		attrs := make([]any, 0, len(zErr.Metadata())*2)
		for key, value := range zErr.Metadata() {
			attrs = append(attrs, key, value)
		}
		l.logger.Error(err.Error(), attrs...)
		return
	}

	l.logger.Error(err.Error())
}
