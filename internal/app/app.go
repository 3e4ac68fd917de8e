// Package app is the composition root: it turns a config into wired use cases.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/carefinder/internal/config"
	"github.com/kailas-cloud/carefinder/internal/db/postgrest"
	dbRedis "github.com/kailas-cloud/carefinder/internal/db/redis"
	"github.com/kailas-cloud/carefinder/internal/domain"
	"github.com/kailas-cloud/carefinder/internal/metrics"
	directoryrepo "github.com/kailas-cloud/carefinder/internal/repository/directory"
	"github.com/kailas-cloud/carefinder/internal/repository/embcache"
	openaiEmb "github.com/kailas-cloud/carefinder/internal/transport/openai"
	directoryuc "github.com/kailas-cloud/carefinder/internal/usecase/directory"
	embeddinguc "github.com/kailas-cloud/carefinder/internal/usecase/embedding"
	healthuc "github.com/kailas-cloud/carefinder/internal/usecase/health"
	rankinguc "github.com/kailas-cloud/carefinder/internal/usecase/ranking"
	searchuc "github.com/kailas-cloud/carefinder/internal/usecase/search"
)

// Options override parts of the default wiring.
type Options struct {
	// Embedder replaces the OpenAI provider. It is still cached and instrumented.
	Embedder domain.Embedder
	// HTTPClient is shared by the directory and embedding clients.
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// App holds the wired services and the handles they share.
type App struct {
	Search  *searchuc.Service
	Health  *healthuc.Service
	closers []func()
}

// Build connects to the configured stores and wires every use case.
// cfg must already have defaults applied.
func Build(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Embedder == nil && cfg.Embedding.APIKey == "" {
		return nil, errors.New("embedding api key or custom embedder required")
	}

	a := &App{}

	pg, err := postgrest.New(postgrest.Config{
		URL:        cfg.Directory.URL,
		APIKey:     cfg.Directory.APIKey,
		Timeout:    time.Duration(cfg.Directory.TimeoutSec) * time.Second,
		HTTPClient: opts.HTTPClient,
	}, metrics.DirectoryRequestDuration)
	if err != nil {
		return nil, fmt.Errorf("create directory client: %w", err)
	}
	a.closers = append(a.closers, pg.Close)
	dirRepo := directoryrepo.New(pg, cfg.Directory.Table, cfg.Directory.MatchFunction)

	var cache *dbRedis.Store
	if cfg.Cache.Enabled() {
		cache, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.Cache.Addrs,
			Password:   cfg.Cache.Password,
			Standalone: cfg.Cache.Standalone,
		})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("create cache store: %w", err)
		}
		a.closers = append(a.closers, cache.Close)

		readiness := time.Duration(cfg.Cache.ReadinessTimeout) * time.Second
		if err = cache.WaitForReady(ctx, readiness); err != nil {
			a.Close()
			return nil, fmt.Errorf("cache not ready: %w", err)
		}
		logger.Info("Connected to embedding cache", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	embedder := buildEmbedder(cfg, opts, cache, logger)
	logger.Info("Embedder created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
		zap.Bool("cached", cache != nil),
	)

	ranker := rankinguc.New(embedder, dirRepo, rankinguc.Config{
		Threshold:        cfg.Ranking.Threshold,
		Candidates:       cfg.Ranking.Candidates,
		CrisisThreshold:  cfg.Ranking.CrisisThreshold,
		CrisisCandidates: cfg.Ranking.CrisisCandidates,
		Dimensions:       cfg.Embedding.Dimensions,
	})
	a.Search = searchuc.New(ranker, directoryuc.New(dirRepo))

	// Pass nil interfaces, not typed nil pointers, for absent components.
	var cachePinger healthuc.Pinger
	if cache != nil {
		cachePinger = cache
	}
	var embChecker healthuc.ProviderChecker
	if hc, ok := embedder.(domain.HealthChecker); ok {
		embChecker = hc
	}
	a.Health = healthuc.New(dirRepo, cachePinger, embChecker)

	return a, nil
}

// Close releases shared handles in reverse creation order.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// buildEmbedder assembles the decorator chain, innermost first: provider,
// throttle, cache, instrumented, instruction. Cache hits skip the throttle.
func buildEmbedder(
	cfg *config.Config, opts Options, cache *dbRedis.Store, logger *zap.Logger,
) domain.Embedder {
	base := opts.Embedder
	if base == nil {
		base = openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Provider:   cfg.Embedding.Provider,
			Timeout:    time.Duration(cfg.Embedding.TimeoutSec) * time.Second,
			HTTPClient: opts.HTTPClient,
			Logger:     logger,
		})
	}

	limiter := embeddinguc.NewLimiter(cfg.Embedding.RateLimit.PerSecond, cfg.Embedding.RateLimit.Burst)
	embedder := embeddinguc.NewThrottledEmbedder(base, cfg.Embedding.Provider, limiter, logger)
	if cache != nil {
		ttl := time.Duration(cfg.Cache.TTLSec) * time.Second
		ns := embcache.Namespace(cfg.Embedding.Model, cfg.Embedding.Dimensions)
		embedder = embcache.New(embedder, cache, ns, ttl, metrics.EmbeddingCacheTotal, logger)
	}
	embedder = embeddinguc.NewInstrumentedEmbedder(
		embedder, cfg.Embedding.Provider, cfg.Embedding.Model, logger,
	)

	// Instruction prefix is outermost so the cache key includes it.
	if cfg.Embedding.QueryInstruction != "" {
		return domain.NewInstructionEmbedder(embedder, cfg.Embedding.QueryInstruction)
	}
	return embedder
}
