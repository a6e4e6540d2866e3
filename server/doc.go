// Package server hosts the gateway's HTTP surface: a Gin engine served over
// HTTP/1.1 and h2c, wrapped in the standard middleware chain.
//
// # Middleware (server/middleware)
//
//   - Recovery: panics become a 500 envelope
//   - RequestID: UUID request IDs propagated to the logger context
//   - CORS
//   - BodySizeLimit: 413 for oversized uploads
//   - RequestLogger: one line per request, probes skipped
//   - Metrics: per-route Prometheus observations
//
// # Endpoints (server/endpoint)
//
//   - /health: component health aggregation
//   - /info: build information
//   - /metrics: Prometheus exposition
//
// Unknown routes answer 404 with the standard error envelope.
package server
