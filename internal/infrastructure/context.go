package infrastructure

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// contextKey is a type for context keys
type contextKey string

// runIDContextKey is the key under which the run identifier is stored.
// Every pipeline invocation gets one ID so the log records of a run can be
// correlated with the artifacts it produced.
const runIDContextKey contextKey = "run_id"

// NewRunID creates a new unique run ID using UUID v4
func NewRunID() string {
	return uuid.New().String()
}

// WithRunID returns a context carrying the given run ID.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDContextKey, runID)
}

// EnsureRunID ensures the context has a run ID, generating one if needed.
func EnsureRunID(ctx context.Context) context.Context {
	if RunIDFrom(ctx) == "" {
		return WithRunID(ctx, NewRunID())
	}
	return ctx
}

// RunIDFrom extracts the run ID from the context, or "" if absent.
func RunIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(runIDContextKey).(string); ok {
		return id
	}
	return ""
}

// LoggerWithContext returns the global logger bound to the context's run ID.
func LoggerWithContext(ctx context.Context) *slog.Logger {
	logger := GetLogger()
	if runID := RunIDFrom(ctx); runID != "" {
		logger = logger.With("run_id", runID)
	}
	return logger
}
