package carefinder

import "context"

// Embedder converts query text to a vector embedding.
// Plug one in with WithEmbedder to replace the OpenAI provider.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// EmbeddingResult carries the embedding vector and token counts.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}
