// Package observability provides structured logging for the application.
package observability

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger to provide specialized logging methods.
type Logger struct {
	*slog.Logger
}

// GlobalLogger is the default logger instance for the application.
var GlobalLogger *Logger

func init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	GlobalLogger = &Logger{Logger: slog.New(handler)}
}

// NewLogger returns a logger scoped to the given component.
func NewLogger(component string) *Logger {
	return &Logger{Logger: GlobalLogger.With(slog.String("component", component))}
}

// StoreLogger provides structured logging for store mutations and queries.
type StoreLogger struct {
	logger *Logger
}

// NewStoreLogger creates a new StoreLogger.
func NewStoreLogger() *StoreLogger {
	return &StoreLogger{logger: NewLogger("store")}
}

// LogMutation logs a store mutation.
func (l *StoreLogger) LogMutation(ctx context.Context, op string, fields map[string]interface{}) {
	attrs := []any{
		slog.String("operation", op),
	}
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	l.logger.InfoContext(ctx, "store mutation", attrs...)
}

// LogError logs a failed store operation.
func (l *StoreLogger) LogError(ctx context.Context, op string, err error) {
	l.logger.ErrorContext(ctx, "store error",
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}
