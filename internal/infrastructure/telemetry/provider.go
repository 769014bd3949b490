// Package telemetry wires OpenTelemetry tracing, logs and metrics plus the
// Prometheus HTTP metrics endpoint.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

const (
	defaultMetricInterval = 60 * time.Second
	shutdownTimeout       = 10 * time.Second
)

// Config is shared by the trace, log and metric providers. With Enabled
// false every provider falls back to the global no-op implementation.
type Config struct {
	Enabled           bool
	CollectorEndpoint string
	Insecure          bool
	SamplingRatio     float64
	ServiceName       string
	ServiceVersion    string
	MetricInterval    time.Duration
}

func newResource(cfg Config) (*resource.Resource, error) {
	version := cfg.ServiceVersion
	if version == "" {
		version = "dev"
	}
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

// shutdown flushes a provider within shutdownTimeout
func shutdown(ctx context.Context, kind string, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		return fmt.Errorf("failed to shutdown %s provider: %w", kind, err)
	}
	return nil
}
