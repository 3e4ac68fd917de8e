package embedding

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kailas-cloud/carefinder/internal/domain"
	"github.com/kailas-cloud/carefinder/internal/metrics"
)

// ThrottledEmbedder holds provider calls to an outbound rate. It belongs
// directly above the provider, under the cache, so cache hits never wait.
type ThrottledEmbedder struct {
	inner    domain.Embedder
	provider string
	limiter  *rate.Limiter
	logger   *zap.Logger
}

// NewThrottledEmbedder wraps inner. A nil limiter returns inner unchanged.
func NewThrottledEmbedder(
	inner domain.Embedder, provider string, limiter *rate.Limiter, logger *zap.Logger,
) domain.Embedder {
	if limiter == nil {
		return inner
	}
	return &ThrottledEmbedder{inner: inner, provider: provider, limiter: limiter, logger: logger}
}

// NewLimiter builds a limiter for perSecond calls with the given burst.
// perSecond <= 0 returns nil (unlimited).
func NewLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))
}

// Embed waits for a token, then delegates.
func (t *ThrottledEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	if !t.limiter.Allow() {
		metrics.EmbeddingThrottledTotal.WithLabelValues(t.provider).Inc()
		if err := t.limiter.Wait(ctx); err != nil {
			t.logger.Warn("Embedding throttled past deadline",
				zap.String("provider", t.provider),
				zap.Error(err),
			)
			return domain.EmbeddingResult{}, fmt.Errorf("rate limit wait: %w", err)
		}
	}
	return t.inner.Embed(ctx, text) //nolint:wrapcheck // transparent decorator
}

// HealthCheck delegates to the inner embedder when it supports health checks.
func (t *ThrottledEmbedder) HealthCheck(ctx context.Context) error {
	if hc, ok := t.inner.(domain.HealthChecker); ok {
		return hc.HealthCheck(ctx) //nolint:wrapcheck // transparent decorator
	}
	return nil
}
