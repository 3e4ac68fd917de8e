package carefinder

import "github.com/kailas-cloud/carefinder/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrSearchUnavailable      = domain.ErrSearchUnavailable
	ErrRankingUnavailable     = domain.ErrRankingUnavailable
	ErrVectorDimMismatch      = domain.ErrVectorDimMismatch
	ErrEmbeddingProviderError = domain.ErrEmbeddingProviderError
	ErrQueryTooLong           = domain.ErrQueryTooLong
)
