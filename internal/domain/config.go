package domain

// KeyPrefix namespaces every key this service writes to the shared cache store.
const KeyPrefix = "carefinder:"

// VectorConfig holds query vectorization settings, not exposed to callers.
type VectorConfig struct {
	Model            string
	Dimensions       int
	QueryInstruction string
}

// DefaultVectorConfig matches the model the directory embeddings were generated with.
func DefaultVectorConfig() VectorConfig {
	return VectorConfig{
		Model:      "text-embedding-3-small",
		Dimensions: 1536,
	}
}
