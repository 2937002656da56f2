// Package observability provides ready-made implementations of the
// dependency-free Logger interface declared by the consuming packages.
// The interface is satisfied by *slog.Logger directly, so these constructors
// only decide where the log records go.
package observability

import (
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
)

// Logger is the logging contract used across the borrowing engine. Each
// consuming package declares its own copy of this interface to stay
// dependency-free; this is the canonical shape.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NewSlogLogger creates a Logger backed by the given slog handler.
func NewSlogLogger(handler slog.Handler) *slog.Logger {
	return slog.New(handler)
}

// NewOtelLogger creates a Logger that emits through the OpenTelemetry slog
// bridge, giving automatic trace correlation via the global LoggerProvider.
func NewOtelLogger(name string) *slog.Logger {
	return otelslog.NewLogger(name)
}

var _ Logger = (*slog.Logger)(nil)
