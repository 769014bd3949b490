package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

// MeterProvider wraps the OpenTelemetry MeterProvider with lifecycle management.
type MeterProvider struct {
	provider *sdkmetric.MeterProvider
	logger   *zap.Logger
}

// NewMeterProvider creates an OTLP meter provider exporting every
// cfg.MetricInterval. If telemetry is disabled, meters come from the global
// no-op provider.
func NewMeterProvider(ctx context.Context, cfg Config, logger *zap.Logger) (*MeterProvider, error) {
	mp := &MeterProvider{logger: logger}
	if !cfg.Enabled {
		return mp, nil
	}
	exportInterval := cfg.MetricInterval
	if exportInterval <= 0 {
		exportInterval = defaultMetricInterval
	}

	exporterOpts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.CollectorEndpoint),
	}
	if cfg.Insecure {
		exporterOpts = append(exporterOpts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
	}

	res, err := newResource(cfg)
	if err != nil {
		return nil, err
	}

	mp.provider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(exportInterval))),
	)
	otel.SetMeterProvider(mp.provider)

	logger.Info("OpenTelemetry MeterProvider initialized",
		zap.String("collector_endpoint", cfg.CollectorEndpoint),
		zap.Duration("export_interval", exportInterval),
	)
	return mp, nil
}

// Shutdown flushes pending metrics and stops the provider.
func (mp *MeterProvider) Shutdown(ctx context.Context) error {
	if mp.provider == nil {
		return nil
	}
	return shutdown(ctx, "meter", mp.provider.Shutdown)
}

// Meter returns a named meter from the provider.
func (mp *MeterProvider) Meter(name string, opts ...metric.MeterOption) metric.Meter {
	if mp == nil || mp.provider == nil {
		return otel.GetMeterProvider().Meter(name, opts...)
	}
	return mp.provider.Meter(name, opts...)
}

// FormMetrics records complement form submissions and the child calls they fan out.
type FormMetrics struct {
	submissions metric.Int64Counter
	childCalls  metric.Int64Counter
	duration    metric.Float64Histogram
}

// NewFormMetrics registers the form instruments on meter.
func NewFormMetrics(meter metric.Meter) (*FormMetrics, error) {
	submissions, err := meter.Int64Counter("menudash.form.submissions",
		metric.WithDescription("Complement form submissions by outcome"),
		metric.WithUnit("{submission}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create counter menudash.form.submissions: %w", err)
	}
	childCalls, err := meter.Int64Counter("menudash.form.child_calls",
		metric.WithDescription("Gateway calls issued by form submissions"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create counter menudash.form.child_calls: %w", err)
	}
	duration, err := meter.Float64Histogram("menudash.form.submit_duration",
		metric.WithDescription("Duration of complement form submissions"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create histogram menudash.form.submit_duration: %w", err)
	}
	return &FormMetrics{submissions: submissions, childCalls: childCalls, duration: duration}, nil
}

// RecordSubmission records a finished submission. mode is "create" or "edit".
func (m *FormMetrics) RecordSubmission(ctx context.Context, mode string, success bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("mode", mode),
		attribute.Bool("success", success),
	)
	m.submissions.Add(ctx, 1, attrs)
	m.duration.Record(ctx, float64(elapsed.Microseconds())/1000, attrs)
}

// RecordChildCall records one gateway call, e.g. "editProduct".
func (m *FormMetrics) RecordChildCall(ctx context.Context, operation string, err error) {
	if m == nil {
		return
	}
	m.childCalls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.Bool("error", err != nil),
	))
}
