package embedding

import "context"

// EmbeddingProvider is an interface for embedding backends
type EmbeddingProvider interface {
	// Embed returns the vector the backend produced for a single text.
	Embed(ctx context.Context, text string) ([]float64, error)
}
