package ranking

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/carefinder/internal/domain"
	"github.com/kailas-cloud/carefinder/internal/domain/search/intent"
	"github.com/kailas-cloud/carefinder/internal/domain/search/result"
	"github.com/kailas-cloud/carefinder/internal/logger"
	"github.com/kailas-cloud/carefinder/internal/metrics"
)

// Config holds similarity cutoffs and candidate pool sizes.
type Config struct {
	Threshold  float64
	Candidates int
	// Crisis queries use a lower cutoff and a wider pool so they are never starved.
	CrisisThreshold  float64
	CrisisCandidates int
	// Dimensions is the expected query vector length. Zero disables the check.
	Dimensions int
}

// DefaultConfig returns the production cutoffs.
func DefaultConfig() Config {
	return Config{
		Threshold:        0.40,
		Candidates:       30,
		CrisisThreshold:  0.20,
		CrisisCandidates: 40,
		Dimensions:       domain.DefaultVectorConfig().Dimensions,
	}
}

// Service ranks directory records by embedding similarity plus location boost.
type Service struct {
	embed Embedder
	store Store
	cfg   Config
}

// New creates a ranking service. Zero-valued cutoffs fall back to DefaultConfig.
func New(embed Embedder, store Store, cfg Config) *Service {
	def := DefaultConfig()
	if cfg.Threshold <= 0 {
		cfg.Threshold = def.Threshold
	}
	if cfg.Candidates <= 0 {
		cfg.Candidates = def.Candidates
	}
	if cfg.CrisisThreshold <= 0 {
		cfg.CrisisThreshold = def.CrisisThreshold
	}
	if cfg.CrisisCandidates <= 0 {
		cfg.CrisisCandidates = def.CrisisCandidates
	}
	return &Service{embed: embed, store: store, cfg: cfg}
}

// Rank returns at most limit results ordered by adjusted score. How many are
// returned also depends on the confidence of the top match.
func (s *Service) Rank(ctx context.Context, raw string, limit int) ([]result.Result, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []result.Result{}, nil
	}

	threshold, candidates := s.cutoffs(raw)

	emb, err := s.embed.Embed(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %w", domain.ErrRankingUnavailable, err)
	}
	if err = emb.CheckDimensions(s.cfg.Dimensions); err != nil {
		return nil, err
	}

	found, err := s.store.SimilaritySearch(ctx, emb.Embedding, threshold, candidates)
	if err != nil {
		return nil, fmt.Errorf("%w: similarity search: %w", domain.ErrRankingUnavailable, err)
	}
	if len(found) == 0 {
		return []result.Result{}, nil
	}

	locations := intent.LocationKeywords(raw)
	ranked := make([]result.Result, 0, len(found))
	for i := range found {
		rec := found[i].Record()
		ranked = append(ranked, found[i].Boosted(LocationBoost(&rec, locations)))
	}
	slices.SortStableFunc(ranked, func(a, b result.Result) int {
		return cmp.Compare(b.Score(), a.Score())
	})

	tier := Tier(ranked[0].Score())
	metrics.RankingConfidenceTotal.WithLabelValues(string(tier)).Inc()

	n := tier.Count()
	if limit > 0 {
		n = min(n, limit)
	}
	n = min(n, len(ranked))

	logger.FromContext(ctx).Debug("ranked candidates",
		zap.Int("candidates", len(found)),
		zap.Float64("threshold", threshold),
		zap.Float64("top_score", ranked[0].Score()),
		zap.String("confidence", string(tier)),
		zap.Int("returned", n),
	)
	return ranked[:n], nil
}

func (s *Service) cutoffs(raw string) (float64, int) {
	if intent.IsCrisis(raw) {
		return s.cfg.CrisisThreshold, s.cfg.CrisisCandidates
	}
	return s.cfg.Threshold, s.cfg.Candidates
}
