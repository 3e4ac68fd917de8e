package search

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/carefinder/internal/domain"
	"github.com/kailas-cloud/carefinder/internal/domain/search/mode"
	"github.com/kailas-cloud/carefinder/internal/domain/search/request"
	"github.com/kailas-cloud/carefinder/internal/domain/search/result"
	"github.com/kailas-cloud/carefinder/internal/logger"
	"github.com/kailas-cloud/carefinder/internal/metrics"
	"github.com/kailas-cloud/carefinder/internal/usecase/directory"
)

// Service tries vector ranking first and degrades to keyword search when
// ranking is unavailable.
type Service struct {
	ranker  Ranker
	keyword KeywordSearcher
}

// New creates a search orchestrator.
func New(ranker Ranker, keyword KeywordSearcher) *Service {
	return &Service{ranker: ranker, keyword: keyword}
}

// Search runs one query. Keyword results carry zero scores.
func (s *Service) Search(ctx context.Context, req *request.Request) ([]result.Result, error) {
	if req.IsBlank() {
		metrics.SearchRequestsTotal.WithLabelValues("none", "empty").Inc()
		return []result.Result{}, nil
	}
	ctx = logger.With(ctx, logger.Query(req.Query()), zap.Int("limit", req.Limit()))

	ranked, err := s.ranker.Rank(ctx, req.Query(), req.Limit())
	if err == nil {
		observe(mode.Vector, ranked)
		return ranked, nil
	}
	if !errors.Is(err, domain.ErrRankingUnavailable) {
		metrics.SearchRequestsTotal.WithLabelValues(string(mode.Vector), "error").Inc()
		return nil, fmt.Errorf("rank: %w", err)
	}

	logger.FromContext(ctx).Warn("vector ranking unavailable, falling back to keyword search", zap.Error(err))
	metrics.SearchFallbacksTotal.Inc()

	recs, kwErr := s.keyword.Search(ctx, req.Query(), req.Limit(), directory.Options{
		PreferLocation: req.PreferLocation(),
	})
	if kwErr != nil {
		metrics.SearchRequestsTotal.WithLabelValues(string(mode.Keyword), "error").Inc()
		return nil, fmt.Errorf("keyword fallback: %w; vector path: %v", kwErr, err) //nolint:errorlint // only the fallback error is matchable
	}

	out := make([]result.Result, 0, len(recs))
	for i := range recs {
		out = append(out, result.FromKeyword(recs[i]))
	}
	observe(mode.Keyword, out)
	return out, nil
}

func observe(path mode.Mode, results []result.Result) {
	outcome := "ok"
	if len(results) == 0 {
		outcome = "empty"
	}
	metrics.SearchRequestsTotal.WithLabelValues(string(path), outcome).Inc()
	metrics.SearchResultsCount.WithLabelValues(string(path)).Observe(float64(len(results)))
}

