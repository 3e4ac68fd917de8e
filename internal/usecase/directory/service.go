package directory

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/carefinder/internal/domain"
	"github.com/kailas-cloud/carefinder/internal/domain/search/filter"
	"github.com/kailas-cloud/carefinder/internal/domain/search/intent"
	"github.com/kailas-cloud/carefinder/internal/domain/search/query"
	"github.com/kailas-cloud/carefinder/internal/domain/search/request"
	"github.com/kailas-cloud/carefinder/internal/domain/service"
	"github.com/kailas-cloud/carefinder/internal/logger"
	"github.com/kailas-cloud/carefinder/internal/metrics"
)

// Stage names reported in metrics and logs.
const (
	stageStrict = "strict"
	stageBroad  = "broad"
)

// Options tune a single keyword search.
type Options struct {
	// PreferLocation treats extracted locations as a request for nearby
	// services even without a proximity word.
	PreferLocation bool
}

// Service runs the staged keyword search: exact location matches first,
// substring matches for the remaining slots.
type Service struct {
	store Store
}

// New creates a directory search service.
func New(store Store) *Service {
	return &Service{store: store}
}

// Search returns up to limit records for raw, strict-stage hits first.
// A blank query returns an empty list without touching the store.
func (s *Service) Search(ctx context.Context, raw string, limit int, opts Options) ([]service.Record, error) {
	if strings.TrimSpace(raw) == "" {
		return []service.Record{}, nil
	}
	if limit <= 0 {
		limit = request.DefaultLimit
	}

	in := intent.Extract(raw)
	if opts.PreferLocation && len(in.Locations) > 0 {
		in.HasLocationIntent = true
	}
	log := logger.FromContext(ctx)

	var strict []service.Record
	if len(in.Locations) > 0 && in.HasLocationIntent {
		recs, err := s.run(ctx, stageStrict, query.Strict(in), limit)
		if err != nil {
			return nil, err
		}
		strict = recs
		log.Debug("strict stage", zap.Strings("locations", in.Locations), zap.Int("hits", len(strict)))
		if len(strict) >= limit {
			return strict[:limit], nil
		}
	}

	// Substring location matches include the exact ones, so the broad stage
	// asks for a full page and merge drops the repeats.
	broad, err := s.run(ctx, stageBroad, query.Broad(in, raw), limit)
	if err != nil {
		return nil, err
	}
	log.Debug("broad stage", zap.Int("hits", len(broad)), zap.Int("strict_hits", len(strict)))

	return merge(strict, broad, limit), nil
}

func (s *Service) run(ctx context.Context, stage string, expr filter.Expression, limit int) ([]service.Record, error) {
	if expr.IsEmpty() {
		return nil, nil
	}
	metrics.DirectoryStageTotal.WithLabelValues(stage).Inc()
	recs, err := s.store.FilteredQuery(ctx, expr, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %s query: %w", domain.ErrSearchUnavailable, stage, err)
	}
	return recs, nil
}

// merge appends broad hits after strict ones, skipping IDs already present,
// and trims to limit.
func merge(strict, broad []service.Record, limit int) []service.Record {
	out := make([]service.Record, 0, min(limit, len(strict)+len(broad)))
	seen := make(map[string]struct{}, len(strict)+len(broad))
	for _, group := range [][]service.Record{strict, broad} {
		for i := range group {
			if len(out) == limit {
				return out
			}
			id := group[i].ID
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, group[i])
		}
	}
	return out
}
