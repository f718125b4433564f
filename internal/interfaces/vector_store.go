package interfaces

import (
	"context"

	"github.com/ternarybob/doceo/internal/models"
)

// VectorStore abstracts the similarity index over corpus passages.
type VectorStore interface {
	// Query returns up to topK passages most similar to the embedding,
	// ordered by descending similarity.
	Query(ctx context.Context, embedding []float32, topK int) ([]models.Passage, error)

	// Upsert adds or replaces passages in the index.
	Upsert(ctx context.Context, records []models.PassageRecord) error

	// Count returns the number of indexed passages.
	Count(ctx context.Context) (int, error)

	// HealthCheck verifies the store is usable.
	HealthCheck(ctx context.Context) error

	Close() error
}
