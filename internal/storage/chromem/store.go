package chromem

import (
	"context"
	"fmt"
	"runtime"

	chromemgo "github.com/philippgille/chromem-go"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/models"
)

// Store implements the VectorStore interface over an embedded chromem-go
// database persisted to disk. The collection shares the pipeline's
// embedding function so indexed passages and queries live in one space.
type Store struct {
	db         *chromemgo.DB
	collection *chromemgo.Collection
	logger     arbor.ILogger
}

// NewStore opens (or creates) the persistent database and collection
func NewStore(path, collectionName string, embeddingFunc chromemgo.EmbeddingFunc, logger arbor.ILogger) (*Store, error) {
	db, err := chromemgo.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open vector database at %s: %w", path, err)
	}

	collection, err := db.GetOrCreateCollection(collectionName, nil, embeddingFunc)
	if err != nil {
		return nil, fmt.Errorf("failed to open collection %s: %w", collectionName, err)
	}

	logger.Info().
		Str("path", path).
		Str("collection", collectionName).
		Int("documents", collection.Count()).
		Msg("Vector store opened")

	return &Store{
		db:         db,
		collection: collection,
		logger:     logger,
	}, nil
}

// Query returns up to topK passages by descending similarity. chromem
// rejects result counts above the collection size, so topK is capped.
func (s *Store) Query(ctx context.Context, embedding []float32, topK int) ([]models.Passage, error) {
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if topK > count {
		topK = count
	}

	results, err := s.collection.QueryEmbedding(ctx, embedding, topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("vector query failed: %w", err)
	}

	passages := make([]models.Passage, 0, len(results))
	for _, r := range results {
		passages = append(passages, models.Passage{
			ID:     r.ID,
			Text:   r.Content,
			Score:  r.Similarity,
			Source: r.Metadata["source"],
		})
	}

	return passages, nil
}

// Upsert adds or replaces passages in the collection
func (s *Store) Upsert(ctx context.Context, records []models.PassageRecord) error {
	if len(records) == 0 {
		return nil
	}

	docs := make([]chromemgo.Document, 0, len(records))
	for _, rec := range records {
		docs = append(docs, chromemgo.Document{
			ID:       rec.ID,
			Content:  rec.Text,
			Metadata: rec.Metadata,
		})
	}

	if err := s.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to index %d passages: %w", len(records), err)
	}

	s.logger.Debug().
		Int("count", len(records)).
		Int("total", s.collection.Count()).
		Msg("Passages indexed")

	return nil
}

// Count returns the number of indexed passages
func (s *Store) Count(ctx context.Context) (int, error) {
	return s.collection.Count(), nil
}

// HealthCheck verifies the collection is reachable
func (s *Store) HealthCheck(ctx context.Context) error {
	if s.collection == nil {
		return fmt.Errorf("vector collection is not initialized")
	}
	return nil
}

// Close releases the store. chromem persists synchronously, so there is
// nothing to flush.
func (s *Store) Close() error {
	return nil
}
