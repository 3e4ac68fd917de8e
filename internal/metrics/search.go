package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "carefinder"

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_requests_total",
			Help:      "Search requests by serving path and outcome",
		},
		[]string{"path", "outcome"}, // path: vector|keyword|none; outcome: ok|empty|error
	)

	SearchFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_fallbacks_total",
			Help:      "Searches that fell back from vector ranking to keyword search",
		},
	)

	SearchResultsCount = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results_count",
			Help:      "Number of results returned per search",
			Buckets:   []float64{0, 1, 3, 5, 7, 10, 20, 50},
		},
		[]string{"path"},
	)

	RankingConfidenceTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ranking_confidence_total",
			Help:      "Vector rankings by confidence tier of the top score",
		},
		[]string{"tier"}, // high|medium|low
	)

	DirectoryStageTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "directory_stage_total",
			Help:      "Keyword search stages executed",
		},
		[]string{"stage"}, // strict|broad
	)

	DirectoryRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "directory_request_duration_seconds",
			Help:      "Directory store request duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation", "status"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchFallbacksTotal)
	prometheus.MustRegister(SearchResultsCount)
	prometheus.MustRegister(RankingConfidenceTotal)
	prometheus.MustRegister(DirectoryStageTotal)
	prometheus.MustRegister(DirectoryRequestDuration)
	searchMetricsRegistered = true
}

// Register registers every metric group. Must be called once from main.
func Register() {
	RegisterHTTPMetrics()
	RegisterEmbeddingMetrics()
	RegisterSearchMetrics()
}
