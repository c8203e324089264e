package client

import (
	"fmt"
	"log/slog"
)

// RequestLogger is the interface used by [Client] for logging API calls and
// rate-limit backoff. It has the same shape as resty's logger, so the
// transport logs through it too. Implement this interface to integrate with
// your logging library and supply the implementation via [WithRequestLogger].
//
// The client never passes the auth token or response bodies to the logger.
type RequestLogger interface {
	Errorf(format string, v ...any)
	Warnf(format string, v ...any)
	Debugf(format string, v ...any)
}

// NoopLogger is a [RequestLogger] that silently discards all log messages.
// It is the default logger used when no logger is provided to [New].
type NoopLogger struct{}

func (l *NoopLogger) Errorf(_ string, _ ...any) {}
func (l *NoopLogger) Warnf(_ string, _ ...any)  {}
func (l *NoopLogger) Debugf(_ string, _ ...any) {}

// SlogLogger adapts a [slog.Logger] to [RequestLogger].
type SlogLogger struct {
	Logger *slog.Logger
}

// NewSlogLogger wraps logger, falling back to [slog.Default] when nil.
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	if logger == nil {
		logger = slog.Default()
	}

	return &SlogLogger{Logger: logger.With("component", "slack-api")}
}

func (l *SlogLogger) Errorf(format string, v ...any) { l.Logger.Error(fmt.Sprintf(format, v...)) }
func (l *SlogLogger) Warnf(format string, v ...any)  { l.Logger.Warn(fmt.Sprintf(format, v...)) }
func (l *SlogLogger) Debugf(format string, v ...any) { l.Logger.Debug(fmt.Sprintf(format, v...)) }
