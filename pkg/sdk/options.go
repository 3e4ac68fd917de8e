package carefinder

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	directoryURL    string
	directoryAPIKey string
	table           string
	matchFunction   string

	openAIKey        string
	openAIBaseURL    string
	model            string
	dimensions       int
	queryInstruction string
	embedder         Embedder

	cacheAddrs    []string
	cachePassword string
	cacheTTL      time.Duration

	threshold  float64
	candidates int

	timeout    time.Duration
	httpClient *http.Client

	logger     *slog.Logger
	coreLogger *zap.Logger
	metricsReg prometheus.Registerer
}

// WithDirectory sets the PostgREST endpoint and key of the service directory. Required.
func WithDirectory(url, apiKey string) Option {
	return optionFunc(func(c *clientConfig) {
		c.directoryURL = url
		c.directoryAPIKey = apiKey
	})
}

// WithTable overrides the directory table and its similarity-search function.
// Defaults: staging_services, search_staging_services.
func WithTable(table, matchFunction string) Option {
	return optionFunc(func(c *clientConfig) {
		c.table = table
		c.matchFunction = matchFunction
	})
}

// WithOpenAI configures the OpenAI embedding provider.
// model and dimensions fall back to text-embedding-3-small / 1536 when empty.
func WithOpenAI(apiKey, model string, dimensions int) Option {
	return optionFunc(func(c *clientConfig) {
		c.openAIKey = apiKey
		c.model = model
		c.dimensions = dimensions
	})
}

// WithOpenAIBaseURL points the provider at an OpenAI-compatible endpoint.
func WithOpenAIBaseURL(baseURL string) Option {
	return optionFunc(func(c *clientConfig) {
		c.openAIBaseURL = baseURL
	})
}

// WithQueryInstruction prefixes every query before it is embedded.
func WithQueryInstruction(instruction string) Option {
	return optionFunc(func(c *clientConfig) {
		c.queryInstruction = instruction
	})
}

// WithEmbedder replaces the OpenAI provider. dimensions must match the
// directory's vector column.
func WithEmbedder(e Embedder, dimensions int) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedder = e
		c.dimensions = dimensions
	})
}

// WithCache enables the Redis/Valkey query-embedding cache. A ttl of zero
// keeps entries without expiry.
func WithCache(addr, password string, ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheAddrs = []string{addr}
		c.cachePassword = password
		c.cacheTTL = ttl
	})
}

// WithRanking overrides the non-crisis similarity cutoff and candidate count.
// Defaults: 0.40 and 30.
func WithRanking(threshold float64, candidates int) Option {
	return optionFunc(func(c *clientConfig) {
		c.threshold = threshold
		c.candidates = candidates
	})
}

// WithTimeout sets the per-call timeout for directory and embedding requests.
// Default: 30s.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithHTTPClient shares one HTTP client between the directory and embedding calls.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithCoreLogger routes the search core's own zap logs. Silent by default.
func WithCoreLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.coreLogger = l
	})
}

// WithPrometheus registers client metrics (operation counts, durations and
// result sources) on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
