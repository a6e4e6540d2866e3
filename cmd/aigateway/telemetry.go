package main

import (
	"context"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/aigateway/bootstrap"
	"github.com/kbukum/aigateway/config"
	"github.com/kbukum/aigateway/observability"
)

// telemetry holds the OpenTelemetry providers started for the process.
type telemetry struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *observability.Metrics
}

func startTelemetry(ctx context.Context, cfg *config.AppConfig) (*telemetry, error) {
	obs := cfg.Observability

	tp, err := observability.InitTracer(ctx, obs.Tracer(cfg.Name, cfg.Version, cfg.Environment))
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	mp, err := observability.InitMeter(ctx, obs.Meter(cfg.Name, cfg.Version, cfg.Environment))
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}
	metrics, err := observability.NewMetrics(observability.Meter(cfg.Name))
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("create instruments: %w", err)
	}
	return &telemetry{tracer: tp, meter: mp, metrics: metrics}, nil
}

// shutdownHooks flush both exporters; bootstrap runs them concurrently.
func (t *telemetry) shutdownHooks() []bootstrap.Hook {
	return []bootstrap.Hook{
		func(ctx context.Context) error { return t.tracer.Shutdown(ctx) },
		func(ctx context.Context) error { return t.meter.Shutdown(ctx) },
	}
}
