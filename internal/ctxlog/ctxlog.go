package ctxlog

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// contextKey is a private type to avoid collisions with other context values.
type contextKey string

const loggerKey = contextKey("logger")

// WithLogger returns a context carrying an operation-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// WithOperation derives a context whose logger is tagged with a fresh operation ID
// and the operation name. Services use this at their entry points so every log line
// of one call can be correlated.
func WithOperation(ctx context.Context, operation string) context.Context {
	logger := FromContext(ctx).With(
		slog.String("operation", operation),
		slog.String("operation_id", uuid.NewString()),
	)
	return WithLogger(ctx, logger)
}

// FromContext retrieves the logger stored in the context, falling back to the
// process default logger when none is present.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
