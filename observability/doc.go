// Package observability wires OpenTelemetry tracing and metrics export, and
// the Prometheus collector served at /metrics.
//
// OpenTelemetry is opt-in through Config.Enabled:
//
//	tp, err := observability.InitTracer(ctx, cfg.Tracer("aigateway", version, env))
//	defer tp.Shutdown(ctx)
//
//	mp, err := observability.InitMeter(ctx, cfg.Meter("aigateway", version, env))
//	defer mp.Shutdown(ctx)
//	metrics, err := observability.NewMetrics(observability.Meter("aigateway"))
//
// The Prometheus Collector is always created. Provider middleware reports to
// it through provider.WithCollector and the HTTP server through its metrics
// middleware.
package observability
