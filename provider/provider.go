package provider

import "context"

// Provider is what the registry and health reporting need from any
// provider: a stable name and a liveness probe.
type Provider interface {
	Name() string
	// IsAvailable probes the upstream. Providers without a probe report
	// true once configured.
	IsAvailable(ctx context.Context) bool
}
