package tutor

import (
	"context"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
)

// Retriever turns a question into scored corpus passages: enhance the
// query, embed it, search the vector store and drop matches below the
// similarity threshold.
type Retriever struct {
	embedder  interfaces.EmbeddingService
	store     interfaces.VectorStore
	topK      int
	threshold float32
	logger    arbor.ILogger
}

// NewRetriever creates a retriever over the given embedder and store
func NewRetriever(embedder interfaces.EmbeddingService, store interfaces.VectorStore, topK int, threshold float32, logger arbor.ILogger) *Retriever {
	return &Retriever{
		embedder:  embedder,
		store:     store,
		topK:      topK,
		threshold: threshold,
		logger:    logger,
	}
}

// Retrieve returns passages relevant to the question, in store order,
// filtered to scores at or above the threshold. Store failures are
// wrapped as vector-store-kind errors.
func (r *Retriever) Retrieve(ctx context.Context, question string) ([]models.Passage, error) {
	enhanced := EnhanceQuery(question)

	vector, err := r.embedder.Embed(ctx, enhanced)
	if err != nil {
		return nil, models.NewInternalError("failed to embed query", err)
	}

	matches, err := r.store.Query(ctx, vector, r.topK)
	if err != nil {
		return nil, models.NewVectorStoreError("vector search failed", err)
	}

	filtered := make([]models.Passage, 0, len(matches))
	for _, m := range matches {
		if m.Score >= r.threshold {
			filtered = append(filtered, m)
		}
	}

	r.logger.Debug().
		Str("query", enhanced).
		Int("matches", len(matches)).
		Int("above_threshold", len(filtered)).
		Msg("Vector search completed")

	return filtered, nil
}
