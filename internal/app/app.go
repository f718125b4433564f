package app

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/common"
	"github.com/ternarybob/doceo/internal/handlers"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/services/embedding"
	"github.com/ternarybob/doceo/internal/services/ingest"
	"github.com/ternarybob/doceo/internal/services/llm"
	"github.com/ternarybob/doceo/internal/services/metrics"
	"github.com/ternarybob/doceo/internal/services/ratelimit"
	"github.com/ternarybob/doceo/internal/services/tutor"
	badgerstore "github.com/ternarybob/doceo/internal/storage/badger"
	chromemstore "github.com/ternarybob/doceo/internal/storage/chromem"
)

// App holds every wired component. Construction order: storage, then
// services, then handlers; Close tears down in reverse.
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	VectorStore interfaces.VectorStore
	Embedder    interfaces.EmbeddingService
	Audit       interfaces.AuditLogger
	Generator   interfaces.GenerationClient
	Tutor       interfaces.TutorService
	Limiter     *ratelimit.SlidingWindowLimiter
	Metrics     *metrics.Service
	Observer    interfaces.PipelineObserver
	Ingest      *ingest.Service

	ChatHandler *handlers.ChatHandler
	APIHandler  *handlers.APIHandler
}

// New wires the application from configuration
func New(ctx context.Context, cfg *common.Config, logger arbor.ILogger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	a.Metrics = metrics.NewService()
	a.Observer = a.Metrics

	embedder := embedding.NewService(cfg.VectorStore.Dimension, logger)
	a.Embedder = embedder

	store, err := chromemstore.NewStore(cfg.VectorStore.Path, cfg.VectorStore.Collection, embedder.EmbeddingFunc(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize vector store: %w", err)
	}
	a.VectorStore = store

	if cfg.Audit.Enabled {
		audit, err := badgerstore.NewAuditStore(cfg.Storage.Path, cfg.Audit.LogPrompts, logger)
		if err != nil {
			a.closePartial()
			return nil, fmt.Errorf("failed to initialize audit store: %w", err)
		}
		a.Audit = audit
	} else {
		a.Audit = llm.NewNullAuditLogger()
	}

	generator, err := llm.NewGenerationClient(cfg, a.Audit, logger)
	if err != nil {
		a.closePartial()
		return nil, err
	}
	a.Generator = generator

	retriever := tutor.NewRetriever(
		a.Embedder,
		a.VectorStore,
		cfg.Retrieval.TopK,
		cfg.Retrieval.SimilarityThreshold,
		logger,
	)
	a.Tutor = tutor.NewService(retriever, a.Generator, a.Observer, cfg.Retrieval.MaxContextChunks, logger)

	window := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
	a.Limiter = ratelimit.NewSlidingWindowLimiter(cfg.RateLimit.MaxRequestsPerMinute, window, logger)

	a.Ingest = ingest.NewService(&cfg.Ingest, a.VectorStore, logger)
	if err := a.Ingest.Start(ctx); err != nil {
		a.closePartial()
		return nil, err
	}

	a.ChatHandler = handlers.NewChatHandler(a.Tutor, a.Limiter, a.Observer, logger)
	a.APIHandler = handlers.NewAPIHandler(a.VectorStore, a.Generator, a.Audit, a.Limiter, logger)

	logger.Info().
		Str("provider", cfg.LLM.Provider).
		Str("collection", cfg.VectorStore.Collection).
		Msg("Application initialized")

	return a, nil
}

// Close releases all resources in reverse construction order
func (a *App) Close() error {
	if a.Ingest != nil {
		a.Ingest.Stop()
	}
	var firstErr error
	if a.Generator != nil {
		if err := a.Generator.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if a.Audit != nil {
		if err := a.Audit.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if a.VectorStore != nil {
		if err := a.VectorStore.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// closePartial tears down whatever New managed to construct
func (a *App) closePartial() {
	if a.Audit != nil {
		_ = a.Audit.Close()
	}
	if a.VectorStore != nil {
		_ = a.VectorStore.Close()
	}
}
