package ranking

import (
	"context"

	"github.com/kailas-cloud/carefinder/internal/domain"
	"github.com/kailas-cloud/carefinder/internal/domain/search/result"
)

// Embedder vectorizes the query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Store runs nearest-neighbour search over indexed directory records.
type Store interface {
	SimilaritySearch(ctx context.Context, embedding []float32, threshold float64, limit int) ([]result.Result, error)
}
