package domain

import (
	"context"
	"fmt"
)

// Embedder turns query text into a vector in the directory's embedding space.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// HealthChecker verifies embedding provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// EmbeddingResult is a query vector plus the provider tokens it cost.
// Cache hits report zero tokens.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// CheckDimensions returns ErrVectorDimMismatch when the vector is empty or,
// for want > 0, has a length other than want.
func (r EmbeddingResult) CheckDimensions(want int) error {
	if len(r.Embedding) == 0 {
		return fmt.Errorf("%w: empty query vector", ErrVectorDimMismatch)
	}
	if want > 0 && len(r.Embedding) != want {
		return fmt.Errorf("%w: expected %d, got %d", ErrVectorDimMismatch, want, len(r.Embedding))
	}
	return nil
}

// InstructionEmbedder prefixes every query with a task instruction, for
// models trained with one ("query: ...").
type InstructionEmbedder struct {
	inner       Embedder
	instruction string
}

// NewInstructionEmbedder wraps inner with the instruction prefix.
func NewInstructionEmbedder(inner Embedder, instruction string) *InstructionEmbedder {
	return &InstructionEmbedder{inner: inner, instruction: instruction}
}

// Embed prefixes text and delegates.
func (e *InstructionEmbedder) Embed(ctx context.Context, text string) (EmbeddingResult, error) {
	result, err := e.inner.Embed(ctx, e.instruction+text)
	if err != nil {
		return EmbeddingResult{}, fmt.Errorf("instruction embed: %w", err)
	}
	return result, nil
}

// HealthCheck delegates to the inner embedder when it supports health checks.
func (e *InstructionEmbedder) HealthCheck(ctx context.Context) error {
	if hc, ok := e.inner.(HealthChecker); ok {
		return hc.HealthCheck(ctx) //nolint:wrapcheck // transparent decorator
	}
	return nil
}
