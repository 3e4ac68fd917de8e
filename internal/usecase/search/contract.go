package search

import (
	"context"

	"github.com/kailas-cloud/carefinder/internal/domain/search/result"
	"github.com/kailas-cloud/carefinder/internal/domain/service"
	"github.com/kailas-cloud/carefinder/internal/usecase/directory"
)

// Ranker is the vector path.
type Ranker interface {
	Rank(ctx context.Context, raw string, limit int) ([]result.Result, error)
}

// KeywordSearcher is the keyword fallback path.
type KeywordSearcher interface {
	Search(ctx context.Context, raw string, limit int, opts directory.Options) ([]service.Record, error)
}
