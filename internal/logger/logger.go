// Package logger wraps zap with the component-tagged vocabulary used for
// request tracing: every line names the part of the service that emitted it.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger components
const (
	ComponentHTTPServer = "HTTP SERVER"
	ComponentValidator  = "VALIDATOR"
	ComponentNegotiator = "NEGOTIATOR"
	ComponentStore      = "STORE"
)

// New builds the process logger. "debug" selects zap's development config,
// any other level a production JSON logger at that level.
func New(level string) (*zap.Logger, error) {
	if strings.EqualFold(level, "debug") {
		return zap.NewDevelopment()
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// Logger emits component-tagged entries.
type Logger struct {
	z *zap.Logger
}

// Wrap adapts a zap logger.
func Wrap(z *zap.Logger) *Logger {
	return &Logger{z: z}
}

// Nop discards everything.
func Nop() *Logger {
	return Wrap(zap.NewNop())
}

// With returns a child logger carrying fields on every entry.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{z: l.z.With(fields...)}
}

// RequestReceived logs the first line of a request.
func (l *Logger) RequestReceived(method, path string) {
	l.z.Info("Request received",
		zap.String("component", ComponentHTTPServer),
		zap.String("method", strings.ToLower(method)),
		zap.String("path", path),
	)
}

// Info logs an info message.
func (l *Logger) Info(component, message string, fields ...zap.Field) {
	l.z.Info(message, append([]zap.Field{zap.String("component", component)}, fields...)...)
}

// Warning logs a warning message.
func (l *Logger) Warning(component, message string, fields ...zap.Field) {
	l.z.Warn(message, append([]zap.Field{zap.String("component", component)}, fields...)...)
}

// Error logs an error message.
func (l *Logger) Error(component, message string, fields ...zap.Field) {
	l.z.Error(message, append([]zap.Field{zap.String("component", component)}, fields...)...)
}

// Success logs a success message.
func (l *Logger) Success(component, message string, fields ...zap.Field) {
	l.z.Info(message, append([]zap.Field{zap.String("component", component), zap.Bool("success", true)}, fields...)...)
}

// RespondWith records the status code the request ended with.
func (l *Logger) RespondWith(statusCode int) {
	l.Info(ComponentNegotiator, fmt.Sprintf("Responding with %d", statusCode), zap.Int("status", statusCode))
}

// Violation emits a final Violation line.
func (l *Logger) Violation(message string) {
	l.Error(ComponentValidator, "Violation: request "+message)
}

// Sync flushes buffered entries. Errors from syncing a terminal are ignored.
func (l *Logger) Sync() {
	_ = l.z.Sync()
}
