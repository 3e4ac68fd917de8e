package health

import "context"

// Pinger is a backing store that answers a liveness probe. The directory
// client and the embedding cache both satisfy it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProviderChecker probes the embedding provider through its decorators.
type ProviderChecker interface {
	HealthCheck(ctx context.Context) error
}
