package interfaces

import "context"

// EmbeddingService converts text into fixed-dimension vectors.
// Implementations must be deterministic: equal input, equal vector.
type EmbeddingService interface {
	// Embed returns the embedding for the given text. The returned slice
	// always has exactly Dimension() elements.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimension returns the embedding vector length.
	Dimension() int
}
