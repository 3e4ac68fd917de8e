package domain

import "errors"

var (
	// ErrSearchUnavailable signals that the directory store could not be queried.
	ErrSearchUnavailable = errors.New("search unavailable")
	// ErrRankingUnavailable signals that the embedding or similarity-search call failed.
	ErrRankingUnavailable = errors.New("ranking unavailable")
	// ErrVectorDimMismatch signals a query vector whose length differs from the index dimension.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrQueryTooLong signals a query over the accepted length.
	ErrQueryTooLong = errors.New("query too long")
)
