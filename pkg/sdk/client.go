package carefinder

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/carefinder/internal/app"
	"github.com/kailas-cloud/carefinder/internal/config"
	"github.com/kailas-cloud/carefinder/internal/domain"
	"github.com/kailas-cloud/carefinder/internal/domain/search/request"
	"github.com/kailas-cloud/carefinder/internal/domain/search/result"
	"github.com/kailas-cloud/carefinder/internal/logger"
)

const defaultReadinessTimeoutSec = 10

// Internal interfaces swapped out in tests.
type searchUseCase interface {
	Search(ctx context.Context, req *request.Request) ([]result.Result, error)
}

// Client is the carefinder SDK entry point.
type Client struct {
	searchSvc searchUseCase
	healthSvc healthUseCase
	closer    func()
	obs       *observer
}

// New creates a Client. The provided context bounds the initial cache
// readiness check; the directory is not contacted until the first search.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cc := &clientConfig{}
	for _, o := range opts {
		o.apply(cc)
	}

	if cc.directoryURL == "" {
		return nil, errors.New("carefinder: directory url required (use WithDirectory)")
	}
	if cc.embedder == nil && cc.openAIKey == "" {
		return nil, errors.New("carefinder: embedding provider required (use WithOpenAI or WithEmbedder)")
	}

	obs, err := newObserver(cc.logger, cc.metricsReg)
	if err != nil {
		return nil, err
	}

	cfg := buildConfig(cc)
	appOpts := app.Options{
		HTTPClient: cc.httpClient,
		Logger:     cc.coreLogger,
	}
	if cc.embedder != nil {
		appOpts.Embedder = &embedderAdapter{inner: cc.embedder}
	}
	if appOpts.Logger != nil {
		ctx = logger.ContextWithLogger(ctx, appOpts.Logger)
	}

	a, err := app.Build(ctx, &cfg, appOpts)
	if err != nil {
		return nil, fmt.Errorf("carefinder: %w", err)
	}

	return &Client{
		searchSvc: a.Search,
		healthSvc: a.Health,
		closer:    a.Close,
		obs:       obs,
	}, nil
}

// buildConfig maps options onto the service config and fills defaults.
func buildConfig(cc *clientConfig) config.Config {
	cfg := config.Config{
		Directory: config.DirectoryConfig{
			URL:           cc.directoryURL,
			APIKey:        cc.directoryAPIKey,
			Table:         cc.table,
			MatchFunction: cc.matchFunction,
		},
		Embedding: config.EmbeddingConfig{
			APIKey:           cc.openAIKey,
			BaseURL:          cc.openAIBaseURL,
			Model:            cc.model,
			Dimensions:       cc.dimensions,
			QueryInstruction: cc.queryInstruction,
		},
		Cache: config.CacheConfig{
			Addrs:            cc.cacheAddrs,
			Password:         cc.cachePassword,
			TTLSec:           int(cc.cacheTTL.Seconds()),
			ReadinessTimeout: defaultReadinessTimeoutSec,
		},
		Ranking: config.RankingConfig{
			Threshold:  cc.threshold,
			Candidates: cc.candidates,
		},
	}
	if cc.embedder != nil {
		cfg.Embedding.Provider = "custom"
		cfg.Embedding.Model = "custom"
	}
	if cc.timeout > 0 {
		secs := int(cc.timeout.Seconds())
		if secs < 1 {
			secs = 1
		}
		cfg.Directory.TimeoutSec = secs
		cfg.Embedding.TimeoutSec = secs
	}
	cfg.ApplyDefaults()
	return cfg
}

// Close releases the cache connection and idle HTTP connections.
func (c *Client) Close() {
	if c.closer != nil {
		c.closer()
		c.closer = nil
	}
}

// embedderAdapter wraps public Embedder to satisfy internal domain.Embedder.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	r, err := a.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}
	return domain.EmbeddingResult{
		Embedding:    r.Embedding,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
	}, nil
}
