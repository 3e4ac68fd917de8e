package metrics

import "github.com/prometheus/client_golang/prometheus"

const embeddingSubsystem = "embedding"

// Embedding provider metrics. Series exported as carefinder_embedding_*.
var (
	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: embeddingSubsystem,
			Name:      "requests_total",
			Help:      "Provider calls by outcome",
		},
		[]string{"provider", "model", "status"}, // status: success|error
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: embeddingSubsystem,
			Name:      "request_duration_seconds",
			Help:      "Latency of successful provider calls",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "model"},
	)

	EmbeddingTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: embeddingSubsystem,
			Name:      "tokens_total",
			Help:      "Tokens billed by the provider",
		},
		[]string{"provider", "model", "type"}, // type: prompt|total
	)

	EmbeddingErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: embeddingSubsystem,
			Name:      "errors_total",
			Help:      "Failed provider calls by cause",
		},
		[]string{"provider", "model", "error_type"},
	)

	EmbeddingThrottledTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: embeddingSubsystem,
			Name:      "throttled_total",
			Help:      "Calls that had to wait on the outbound rate limiter",
		},
		[]string{"provider"},
	)

	EmbeddingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: embeddingSubsystem,
			Name:      "cache_total",
			Help:      "Query embedding cache lookups",
		},
		[]string{"result"}, // hit|miss
	)
)

var embeddingRegistered bool

// RegisterEmbeddingMetrics adds the embedding collectors to the default
// registry. Repeated calls are no-ops.
func RegisterEmbeddingMetrics() {
	if embeddingRegistered {
		return
	}
	prometheus.MustRegister(
		EmbeddingRequestsTotal,
		EmbeddingRequestDuration,
		EmbeddingTokensTotal,
		EmbeddingErrorsTotal,
		EmbeddingThrottledTotal,
		EmbeddingCacheTotal,
	)
	embeddingRegistered = true
}
