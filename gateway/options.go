package gateway

import (
	"net/http"

	"github.com/kbukum/aigateway/logger"
	"github.com/kbukum/aigateway/observability"
	"github.com/kbukum/aigateway/provider"
)

// Option configures a Gateway.
type Option func(*options)

type options struct {
	log          *logger.Logger
	metrics      *observability.Metrics
	tracing      string
	collector    provider.Collector
	roundTripper http.RoundTripper
}

// WithLogger sets the logger used for provider call logs.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics records provider calls on OpenTelemetry instruments.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithTracing opens a span per provider call, named after serviceName.
func WithTracing(serviceName string) Option {
	return func(o *options) { o.tracing = serviceName }
}

// WithCollector records provider calls on Prometheus instruments.
func WithCollector(c provider.Collector) Option {
	return func(o *options) { o.collector = c }
}

// WithRoundTripper replaces the HTTP round tripper of every transport.
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(o *options) { o.roundTripper = rt }
}

// instrument wraps p with the configured middleware, outermost first:
// logging, tracing, metrics, collector.
func instrument[I, O any](o *options, p provider.RequestResponse[I, O]) provider.RequestResponse[I, O] {
	mws := []provider.Middleware[I, O]{provider.WithLogging[I, O](o.log)}
	if o.tracing != "" {
		mws = append(mws, provider.WithTracing[I, O](o.tracing))
	}
	if o.metrics != nil {
		mws = append(mws, provider.WithMetrics[I, O](o.metrics))
	}
	if o.collector != nil {
		mws = append(mws, provider.WithCollector[I, O](o.collector))
	}
	return provider.Chain(mws...)(p)
}
