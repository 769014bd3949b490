package logger

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Gin context keys shared with the HTTP middleware
const (
	GinLoggerKey    = "logger"
	GinRequestIDKey = "request_id"
)

type ginOptions struct {
	skipPaths []string
}

type GinOption func(*ginOptions)

// WithSkipPaths suppresses the access log line for probe endpoints such as
// /health. Those requests still get a request-scoped logger.
func WithSkipPaths(paths ...string) GinOption {
	return func(o *ginOptions) { o.skipPaths = append(o.skipPaths, paths...) }
}

// GinMiddleware attaches a request-scoped logger to the gin context and to
// the request context, then writes one access log line per request.
func GinMiddleware(logger *zap.Logger, opts ...GinOption) gin.HandlerFunc {
	var o ginOptions
	for _, opt := range opts {
		opt(&o)
	}

	return func(c *gin.Context) {
		start := time.Now()
		req := c.Request

		reqLogger := WithTraceContext(req.Context(), logger).With(
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
		)
		ctx := WithContext(req.Context(), reqLogger)
		if requestID := c.GetString(GinRequestIDKey); requestID != "" {
			ctx, reqLogger = WithRequestID(ctx, reqLogger, requestID)
		}
		c.Request = req.WithContext(ctx)
		c.Set(GinLoggerKey, reqLogger)

		c.Next()

		if slices.Contains(o.skipPaths, req.URL.Path) {
			return
		}
		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("route", c.FullPath()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", req.UserAgent()),
			zap.Int("body_size", c.Writer.Size()),
		}
		if req.URL.RawQuery != "" {
			fields = append(fields, zap.String("query", req.URL.RawQuery))
		}
		// user and company are known only after auth and path parsing ran
		for _, key := range []contextKey{UserIDKey, CompanyIDKey} {
			if v := scopeValue(c.Request.Context(), key); v != "" {
				fields = append(fields, zap.String(string(key), v))
			}
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
		}
		if ce := reqLogger.Check(statusLevel(status), "HTTP Request"); ce != nil {
			ce.Write(fields...)
		}
	}
}

func statusLevel(status int) zapcore.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zapcore.ErrorLevel
	case status >= http.StatusBadRequest:
		return zapcore.WarnLevel
	}
	return zapcore.InfoLevel
}

// Recovery turns a handler panic into a 500 INTERNAL_ERROR response and logs
// it with the stack
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			WithLogger(c.Request.Context(), logger).Error("Panic recovered",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Any("error", rec),
				zap.Stack("stacktrace"),
			)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":       "INTERNAL_ERROR",
					"message":    "An internal error occurred",
					"request_id": c.GetString(GinRequestIDKey),
				},
			})
		}()
		c.Next()
	}
}

// GetGinLogger returns the request-scoped logger, or a no-op logger outside GinMiddleware
func GetGinLogger(c *gin.Context) *zap.Logger {
	if l, ok := c.Value(GinLoggerKey).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}
