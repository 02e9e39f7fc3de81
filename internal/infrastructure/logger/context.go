package logger

import (
	"context"

	"github.com/erp/feeengine/internal/domain/shared"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey struct{}

// WithContext attaches logger to ctx
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the request logger with trace_id and span_id of the active span.
// Without a stored logger it returns a no-op logger.
func FromContext(ctx context.Context) *zap.Logger {
	l, ok := ctx.Value(contextKey{}).(*zap.Logger)
	if !ok {
		return zap.NewNop()
	}
	return WithTrace(ctx, l)
}

// WithTrace adds the active span's ids to logger
func WithTrace(ctx context.Context, logger *zap.Logger) *zap.Logger {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return logger
	}
	return logger.With(
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	)
}

// WithActor enriches the context logger with who is acting and stores it back
func WithActor(ctx context.Context, actor shared.Actor) context.Context {
	l, ok := ctx.Value(contextKey{}).(*zap.Logger)
	if !ok {
		return ctx
	}
	return WithContext(ctx, l.With(ActorFields(actor)...))
}

// ActorFields are the log fields identifying an actor
func ActorFields(actor shared.Actor) []zap.Field {
	return []zap.Field{
		zap.String("tenant_id", actor.TenantID.String()),
		zap.String("user_id", actor.UserID.String()),
	}
}
