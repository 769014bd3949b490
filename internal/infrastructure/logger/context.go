package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey string

// Context keys of the identifiers that scope a request's log entries
const (
	LoggerKey    contextKey = "logger"
	RequestIDKey contextKey = "request_id"
	CompanyIDKey contextKey = "company_id"
	UserIDKey    contextKey = "user_id"
)

// scopeKeys are copied onto every entry written through L, in this order
var scopeKeys = []contextKey{RequestIDKey, CompanyIDKey, UserIDKey}

// WithContext attaches logger to ctx
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext returns the logger attached to ctx, or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// withScope stores value under key and attaches a logger carrying it as a field
func withScope(ctx context.Context, logger *zap.Logger, key contextKey, value string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, key, value)
	scoped := logger.With(zap.String(string(key), value))
	return WithContext(ctx, scoped), scoped
}

func scopeValue(ctx context.Context, key contextKey) string {
	v, _ := ctx.Value(key).(string)
	return v
}

// WithRequestID scopes ctx and its logger to a request
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	return withScope(ctx, logger, RequestIDKey, requestID)
}

// WithCompanyID scopes ctx and its logger to the company whose catalog is being changed
func WithCompanyID(ctx context.Context, logger *zap.Logger, companyID string) (context.Context, *zap.Logger) {
	return withScope(ctx, logger, CompanyIDKey, companyID)
}

// WithUserID scopes ctx and its logger to the authenticated user
func WithUserID(ctx context.Context, logger *zap.Logger, userID string) (context.Context, *zap.Logger) {
	return withScope(ctx, logger, UserIDKey, userID)
}

func GetRequestID(ctx context.Context) string { return scopeValue(ctx, RequestIDKey) }
func GetCompanyID(ctx context.Context) string { return scopeValue(ctx, CompanyIDKey) }
func GetUserID(ctx context.Context) string    { return scopeValue(ctx, UserIDKey) }

func activeSpan(ctx context.Context) (trace.SpanContext, bool) {
	sc := trace.SpanContextFromContext(ctx)
	return sc, sc.IsValid()
}

// GetTraceID returns the trace id of the active span, or "" without one
func GetTraceID(ctx context.Context) string {
	if sc, ok := activeSpan(ctx); ok {
		return sc.TraceID().String()
	}
	return ""
}

// GetSpanID returns the span id of the active span, or "" without one
func GetSpanID(ctx context.Context) string {
	if sc, ok := activeSpan(ctx); ok {
		return sc.SpanID().String()
	}
	return ""
}

// WithTraceContext adds trace_id and span_id of the active span to logger.
// logger is returned unchanged when ctx carries no valid span.
func WithTraceContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	sc, ok := activeSpan(ctx)
	if !ok {
		return logger
	}
	return logger.With(
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	)
}

// ContextLogger writes entries that carry the trace and scope identifiers of its context
type ContextLogger struct {
	ctx    context.Context
	logger *zap.Logger
}

// L returns a ContextLogger over the logger attached to ctx.
//
//	logger.L(ctx).Warn("item edit failed", zap.Int("index", i))
func L(ctx context.Context) *ContextLogger {
	return &ContextLogger{ctx: ctx, logger: FromContext(ctx)}
}

// WithLogger returns a ContextLogger over logger instead of the attached one
func WithLogger(ctx context.Context, logger *zap.Logger) *ContextLogger {
	return &ContextLogger{ctx: ctx, logger: logger}
}

func (cl *ContextLogger) enriched() *zap.Logger {
	l := cl.logger
	if l == nil {
		return zap.NewNop()
	}
	l = WithTraceContext(cl.ctx, l)
	for _, key := range scopeKeys {
		if v := scopeValue(cl.ctx, key); v != "" {
			l = l.With(zap.String(string(key), v))
		}
	}
	return l
}

// With returns a child ContextLogger with extra fields
func (cl *ContextLogger) With(fields ...zap.Field) *ContextLogger {
	return &ContextLogger{ctx: cl.ctx, logger: cl.logger.With(fields...)}
}

func (cl *ContextLogger) Debug(msg string, fields ...zap.Field) { cl.enriched().Debug(msg, fields...) }
func (cl *ContextLogger) Info(msg string, fields ...zap.Field)  { cl.enriched().Info(msg, fields...) }
func (cl *ContextLogger) Warn(msg string, fields ...zap.Field)  { cl.enriched().Warn(msg, fields...) }
func (cl *ContextLogger) Error(msg string, fields ...zap.Field) { cl.enriched().Error(msg, fields...) }

// Zap returns the enriched *zap.Logger for APIs that take one
func (cl *ContextLogger) Zap() *zap.Logger {
	return cl.enriched()
}

// Sugar returns the enriched logger in sugared form
func (cl *ContextLogger) Sugar() *zap.SugaredLogger {
	return cl.enriched().Sugar()
}
