package logger

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type ctxKey string

const (
	requestIDKey ctxKey = "requestID"
	simDayKey    ctxKey = "simDay"
)

// GenerateRequestID creates a new UUID for tracing requests.
func GenerateRequestID() string {
	return uuid.NewString()
}

// WithRequestID returns a new context containing the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext extracts the request ID from the context, if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(requestIDKey)
	if v == nil {
		return "", false
	}
	if id, ok := v.(string); ok {
		return id, true
	}
	return "", false
}

// WithDay returns a new context carrying the simulated day, so every log line
// produced inside a tick can be traced back to it.
func WithDay(ctx context.Context, day int) context.Context {
	return context.WithValue(ctx, simDayKey, day)
}

// DayFromContext extracts the simulated day from the context, if present.
func DayFromContext(ctx context.Context) (int, bool) {
	v := ctx.Value(simDayKey)
	if v == nil {
		return 0, false
	}
	if day, ok := v.(int); ok {
		return day, true
	}
	return 0, false
}

// FromContext returns a logger that includes the request_id and sim_day
// attributes when present.
func FromContext(ctx context.Context) *slog.Logger {
	log := slog.Default()
	if id, ok := RequestIDFromContext(ctx); ok {
		log = log.With("request_id", id)
	}
	if day, ok := DayFromContext(ctx); ok {
		log = log.With("sim_day", day)
	}
	return log
}
