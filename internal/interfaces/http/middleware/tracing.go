// Package middleware provides the gin middleware of the menu catalog API.
package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig configures request spans.
type TracingConfig struct {
	ServiceName string
	Enabled     bool
	// SkipPaths are request paths that never get a span (probes, metrics).
	SkipPaths []string
}

// DefaultTracingConfig traces every request as menudash-backend.
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{ServiceName: "menudash-backend", Enabled: true}
}

// TracingWithConfig opens one server span per request, named
// "METHOD /route/:param". Disabled tracing is a pass-through.
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	var opts []otelgin.Option
	if len(cfg.SkipPaths) > 0 {
		skip := slices.Clone(cfg.SkipPaths)
		opts = append(opts, otelgin.WithFilter(func(r *http.Request) bool {
			return !slices.Contains(skip, r.URL.Path)
		}))
	}
	return otelgin.Middleware(cfg.ServiceName, opts...)
}

// SpanErrorMarker flags 4xx responses as span errors. otelgin leaves client
// errors unset on server spans and marks 5xx itself. Register it after
// TracingWithConfig.
func SpanErrorMarker() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < http.StatusBadRequest || status >= http.StatusInternalServerError {
			return
		}
		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}
		desc := http.StatusText(status)
		if desc == "" {
			desc = "Client Error"
		}
		span.SetStatus(codes.Error, desc)
	}
}

// TracingAttributeInjector copies the request scope onto the span. Register
// it after SessionAuth so the user is known.
func TracingAttributeInjector() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			var attrs []attribute.KeyValue
			for key, value := range map[string]string{
				"request_id": getRequestID(c),
				"user_id":    GetUserID(c),
			} {
				if value != "" {
					attrs = append(attrs, attribute.String(key, value))
				}
			}
			span.SetAttributes(attrs...)
		}
		c.Next()
	}
}
