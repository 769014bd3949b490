package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerProvider ships zap entries to the OTLP collector next to the
// regular stdout output.
type LoggerProvider struct {
	provider *sdklog.LoggerProvider
}

// NewLoggerProvider starts the OTLP log pipeline. A disabled config gives a
// provider whose Core drops everything.
func NewLoggerProvider(ctx context.Context, cfg Config, logger *zap.Logger) (*LoggerProvider, error) {
	if !cfg.Enabled {
		return &LoggerProvider{}, nil
	}

	opts := []otlploggrpc.Option{otlploggrpc.WithEndpoint(cfg.CollectorEndpoint)}
	if cfg.Insecure {
		opts = append(opts, otlploggrpc.WithInsecure())
	}
	exporter, err := otlploggrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("otlp log exporter: %w", err)
	}
	res, err := newResource(cfg)
	if err != nil {
		return nil, err
	}

	provider := sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
	)
	global.SetLoggerProvider(provider)
	logger.Info("OTLP log export enabled", zap.String("collector_endpoint", cfg.CollectorEndpoint))
	return &LoggerProvider{provider: provider}, nil
}

// Core is an otelzap core for tee-ing into the application logger. It only
// accepts entries at level or above.
func (lp *LoggerProvider) Core(name string, level zapcore.Level) zapcore.Core {
	if lp == nil || lp.provider == nil {
		return zapcore.NewNopCore()
	}
	core := otelzap.NewCore(name, otelzap.WithLoggerProvider(lp.provider))
	leveled, err := zapcore.NewIncreaseLevelCore(core, level)
	if err != nil {
		return core
	}
	return leveled
}

// Shutdown flushes buffered records.
func (lp *LoggerProvider) Shutdown(ctx context.Context) error {
	if lp.provider == nil {
		return nil
	}
	return shutdown(ctx, "logger", lp.provider.Shutdown)
}
