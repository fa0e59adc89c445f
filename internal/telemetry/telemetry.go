package telemetry

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// DefaultInterval is used when Config.Interval is not set
const DefaultInterval = time.Minute

// Config for the metrics pipeline
type Config struct {
	// ServiceName is reported as the service.name resource attribute
	ServiceName string

	// Enabled installs the SDK meter provider, otherwise the global no-op provider stays
	Enabled bool

	// Interval between exports
	Interval time.Duration

	// Writer receives exported metrics, stdout when nil
	Writer io.Writer
}

// ShutdownFunc flushes and stops the pipeline
type ShutdownFunc func(context.Context) error

// SetupMetrics bootstraps the OpenTelemetry metrics pipeline.
// If it does not return an error, make sure to call shutdown for proper cleanup.
func SetupMetrics(ctx context.Context, cfg *Config) (ShutdownFunc, error) {
	noop := func(context.Context) error { return nil }

	if cfg == nil || !cfg.Enabled {
		return noop, nil
	}

	meterProvider, err := newMeterProvider(ctx, cfg)
	if err != nil {
		return noop, err
	}
	otel.SetMeterProvider(meterProvider)

	return func(ctx context.Context) error {
		return errors.Join(meterProvider.ForceFlush(ctx), meterProvider.Shutdown(ctx))
	}, nil
}

func newMeterProvider(ctx context.Context, cfg *Config) (*sdkmetric.MeterProvider, error) {
	writer := cfg.Writer
	if writer == nil {
		writer = os.Stdout
	}

	metricExporter, err := stdoutmetric.New(stdoutmetric.WithWriter(writer))
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, err
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter,
			sdkmetric.WithInterval(interval))),
	)
	return meterProvider, nil
}
