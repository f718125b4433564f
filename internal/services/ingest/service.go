package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/common"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
)

// Service indexes the corpus directory into the vector store. Reindexing
// runs at startup, on the configured cron schedule, and when the watcher
// sees the directory change.
type Service struct {
	config  *common.IngestConfig
	store   interfaces.VectorStore
	chunker *Chunker
	logger  arbor.ILogger

	cron    *cron.Cron
	watcher *fsnotify.Watcher
	mu      sync.Mutex // serializes reindex runs
	done    chan struct{}
}

// NewService creates the ingestion service
func NewService(config *common.IngestConfig, store interfaces.VectorStore, logger arbor.ILogger) *Service {
	return &Service{
		config:  config,
		store:   store,
		chunker: NewChunker(config.ChunkSize, config.ChunkOverlap),
		logger:  logger,
		done:    make(chan struct{}),
	}
}

// Start runs an initial reindex and begins scheduled and watched reindexing
func (s *Service) Start(ctx context.Context) error {
	if _, err := os.Stat(s.config.Dir); os.IsNotExist(err) {
		s.logger.Warn().
			Str("dir", s.config.Dir).
			Msg("Corpus directory does not exist, skipping ingestion")
		return nil
	}

	if err := s.Reindex(ctx); err != nil {
		return fmt.Errorf("initial corpus indexing failed: %w", err)
	}

	if s.config.Schedule != "" {
		s.cron = cron.New()
		_, err := s.cron.AddFunc(s.config.Schedule, func() {
			if err := s.Reindex(context.Background()); err != nil {
				s.logger.Error().Err(err).Msg("Scheduled reindex failed")
			}
		})
		if err != nil {
			return fmt.Errorf("invalid ingest schedule '%s': %w", s.config.Schedule, err)
		}
		s.cron.Start()
		s.logger.Info().Str("schedule", s.config.Schedule).Msg("Scheduled corpus reindex enabled")
	}

	if s.config.Watch {
		if err := s.startWatcher(); err != nil {
			return err
		}
	}

	return nil
}

// Reindex scans the corpus directory and upserts every chunk. Chunk IDs
// are content hashes, so unchanged text maps to the same document and
// repeat runs stay idempotent.
func (s *Service) Reindex(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []models.PassageRecord
	files := 0

	err := filepath.WalkDir(s.config.Dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".md" && ext != ".txt" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		content := string(data)
		if ext == ".md" {
			content = ExtractMarkdownText(data)
		}

		rel, relErr := filepath.Rel(s.config.Dir, path)
		if relErr != nil {
			rel = filepath.Base(path)
		}

		for i, chunk := range s.chunker.Split(content) {
			records = append(records, models.PassageRecord{
				ID:   chunkID(chunk),
				Text: chunk,
				Metadata: map[string]string{
					"source": rel,
					"chunk":  strconv.Itoa(i),
				},
			})
		}
		files++
		return nil
	})
	if err != nil {
		return fmt.Errorf("corpus scan failed: %w", err)
	}

	if len(records) == 0 {
		s.logger.Warn().Str("dir", s.config.Dir).Msg("No corpus content found")
		return nil
	}

	if err := s.store.Upsert(ctx, records); err != nil {
		return err
	}

	s.logger.Info().
		Int("files", files).
		Int("chunks", len(records)).
		Msg("Corpus indexed")

	return nil
}

// startWatcher reindexes when files in the corpus directory change
func (s *Service) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create corpus watcher: %w", err)
	}
	if err := watcher.Add(s.config.Dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", s.config.Dir, err)
	}
	s.watcher = watcher

	go func() {
		for {
			select {
			case <-s.done:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				s.logger.Debug().
					Str("file", event.Name).
					Str("op", event.Op.String()).
					Msg("Corpus change detected")
				if err := s.Reindex(context.Background()); err != nil {
					s.logger.Error().Err(err).Msg("Watched reindex failed")
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn().Err(err).Msg("Corpus watcher error")
			}
		}
	}()

	s.logger.Info().Str("dir", s.config.Dir).Msg("Corpus watcher started")
	return nil
}

// Stop halts scheduled and watched reindexing
func (s *Service) Stop() {
	close(s.done)
	if s.cron != nil {
		s.cron.Stop()
	}
	if s.watcher != nil {
		s.watcher.Close()
	}
}

// chunkID derives a stable document ID from chunk content
func chunkID(chunk string) string {
	sum := sha256.Sum256([]byte(chunk))
	return hex.EncodeToString(sum[:16])
}
