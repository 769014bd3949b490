package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved() (*zap.Logger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return zap.New(core), recorded
}

func spanContext(t *testing.T) (context.Context, trace.Span) {
	t.Helper()
	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return tp.Tracer("test").Start(context.Background(), "op")
}

func TestFromContext(t *testing.T) {
	l, _ := newObserved()
	ctx := WithContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))

	assert.NotNil(t, FromContext(context.Background()))
	wrong := context.WithValue(context.Background(), LoggerKey, "not a logger")
	assert.NotNil(t, FromContext(wrong))
}

func TestContextIdentifiers(t *testing.T) {
	l, recorded := newObserved()
	ctx := context.Background()

	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetCompanyID(ctx))
	assert.Empty(t, GetUserID(ctx))

	ctx, _ = WithRequestID(ctx, l, "req-1")
	ctx, _ = WithUserID(ctx, FromContext(ctx), "user_2abc")
	ctx, enriched := WithCompanyID(ctx, FromContext(ctx), "company-1")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "user_2abc", GetUserID(ctx))
	assert.Equal(t, "company-1", GetCompanyID(ctx))

	enriched.Info("chained")
	fields := recorded.All()[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "user_2abc", fields["user_id"])
	assert.Equal(t, "company-1", fields["company_id"])
}

func TestTraceCorrelation(t *testing.T) {
	t.Run("no span", func(t *testing.T) {
		l, _ := newObserved()
		ctx := context.Background()
		assert.Empty(t, GetTraceID(ctx))
		assert.Empty(t, GetSpanID(ctx))
		assert.Same(t, l, WithTraceContext(ctx, l))
	})

	t.Run("recording span", func(t *testing.T) {
		ctx, span := spanContext(t)
		defer span.End()

		assert.Equal(t, span.SpanContext().TraceID().String(), GetTraceID(ctx))
		assert.Equal(t, span.SpanContext().SpanID().String(), GetSpanID(ctx))

		l, recorded := newObserved()
		WithTraceContext(ctx, l).Info("traced")
		fields := recorded.All()[0].ContextMap()
		assert.Equal(t, GetTraceID(ctx), fields["trace_id"])
		assert.Equal(t, GetSpanID(ctx), fields["span_id"])
	})
}

func TestContextLogger(t *testing.T) {
	t.Run("enriches entries with every identifier", func(t *testing.T) {
		ctx, span := spanContext(t)
		defer span.End()
		l, recorded := newObserved()
		ctx = WithContext(ctx, l)
		ctx = context.WithValue(ctx, RequestIDKey, "req-9")
		ctx = context.WithValue(ctx, CompanyIDKey, "company-9")
		ctx = context.WithValue(ctx, UserIDKey, "user-9")

		L(ctx).With(zap.String("op", "editItem")).Warn("partial failure")

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, zapcore.WarnLevel, logs[0].Level)
		fields := logs[0].ContextMap()
		for _, key := range []string{"trace_id", "span_id", "request_id", "company_id", "user_id", "op"} {
			assert.Contains(t, fields, key)
		}
	})

	t.Run("omits missing identifiers", func(t *testing.T) {
		l, recorded := newObserved()
		WithLogger(context.Background(), l).Info("bare")

		fields := recorded.All()[0].ContextMap()
		assert.NotContains(t, fields, "trace_id")
		assert.NotContains(t, fields, "company_id")
	})

	t.Run("levels and accessors", func(t *testing.T) {
		l, recorded := newObserved()
		cl := WithLogger(context.Background(), l)
		cl.Debug("d")
		cl.Info("i")
		cl.Error("e")
		cl.Zap().Info("z")
		cl.Sugar().Infof("s %d", 1)
		assert.Len(t, recorded.All(), 5)
	})

	t.Run("nil logger does not panic", func(t *testing.T) {
		cl := &ContextLogger{ctx: context.Background()}
		assert.NotPanics(t, func() { cl.Info("nothing") })
	})
}
