package provider

import (
	"context"
	"time"

	"github.com/kbukum/aigateway/observability"
)

// WithMetrics returns a Middleware that records OpenTelemetry operation
// counts, durations and errors for each Execute call.
func WithMetrics[I, O any](metrics *observability.Metrics) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &metricsRR[I, O]{wrapped: wrapped[I, O]{inner}, metrics: metrics}
	}
}

type metricsRR[I, O any] struct {
	wrapped[I, O]
	metrics *observability.Metrics
}

func (m *metricsRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	start := time.Now()
	output, err := m.inner.Execute(ctx, input)

	status := Outcome(err)
	if err != nil {
		m.metrics.RecordError(ctx, status, m.inner.Name())
	}
	m.metrics.RecordOperation(ctx, m.inner.Name(), "execute", status, time.Since(start))

	return output, err
}

// Collector receives one observation per provider call.
// observability.Collector implements it with Prometheus instruments.
type Collector interface {
	ObserveProviderCall(provider, status string, d time.Duration)
}

// WithCollector returns a Middleware that reports each Execute call to c.
func WithCollector[I, O any](c Collector) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &collectorRR[I, O]{wrapped: wrapped[I, O]{inner}, c: c}
	}
}

type collectorRR[I, O any] struct {
	wrapped[I, O]
	c Collector
}

func (m *collectorRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	start := time.Now()
	output, err := m.inner.Execute(ctx, input)
	m.c.ObserveProviderCall(m.inner.Name(), Outcome(err), time.Since(start))
	return output, err
}
