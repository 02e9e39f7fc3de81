package logger

import (
	"context"
	"testing"

	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func spanContext(t *testing.T) trace.SpanContext {
	t.Helper()
	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	return trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})
}

func TestFromContext(t *testing.T) {
	t.Run("no logger gives a no-op", func(t *testing.T) {
		l := FromContext(context.Background())
		assert.NotNil(t, l)
		l.Info("ignored")
	})

	t.Run("adds trace ids of the active span", func(t *testing.T) {
		core, recorded := observer.New(zapcore.InfoLevel)
		ctx := WithContext(context.Background(), zap.New(core))
		ctx = trace.ContextWithSpanContext(ctx, spanContext(t))

		FromContext(ctx).Info("sweep started")
		fields := recorded.All()[0].ContextMap()
		assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", fields["trace_id"])
		assert.Equal(t, "00f067aa0ba902b7", fields["span_id"])
	})
}

func TestWithActor(t *testing.T) {
	actor := shared.Actor{TenantID: uuid.New(), UserID: uuid.New(), Roles: []string{shared.RoleLawyer}}

	t.Run("enriches the stored logger", func(t *testing.T) {
		core, recorded := observer.New(zapcore.InfoLevel)
		ctx := WithActor(WithContext(context.Background(), zap.New(core)), actor)

		FromContext(ctx).Info("commission paid")
		fields := recorded.All()[0].ContextMap()
		assert.Equal(t, actor.TenantID.String(), fields["tenant_id"])
		assert.Equal(t, actor.UserID.String(), fields["user_id"])
	})

	t.Run("without a logger the context is unchanged", func(t *testing.T) {
		ctx := context.Background()
		assert.Equal(t, ctx, WithActor(ctx, actor))
	})
}
