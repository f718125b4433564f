package badger

import (
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// AuditStore persists LLM audit entries in an embedded badgerhold
// database.
type AuditStore struct {
	store      *badgerhold.Store
	logPrompts bool
	logger     arbor.ILogger
}

// NewAuditStore opens the audit database at the given path. When
// logPrompts is false, prompt text is never written to disk.
func NewAuditStore(path string, logPrompts bool, logger arbor.ILogger) (*AuditStore, error) {
	options := badgerhold.DefaultOptions
	options.Options = badger.DefaultOptions(path).WithLogger(nil)

	store, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit store at %s: %w", path, err)
	}

	logger.Debug().
		Str("path", path).
		Bool("log_prompts", logPrompts).
		Msg("Audit store opened")

	return &AuditStore{
		store:      store,
		logPrompts: logPrompts,
		logger:     logger,
	}, nil
}

// LogGeneration records one completion attempt
func (s *AuditStore) LogGeneration(model string, attempt int, success bool, duration time.Duration, opErr error, prompt string) error {
	entry := models.AuditEntry{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Operation: "generate",
		Model:     model,
		Attempt:   attempt,
		Success:   success,
		Duration:  duration.Milliseconds(),
	}
	if opErr != nil {
		entry.Error = opErr.Error()
	}
	if s.logPrompts {
		entry.Prompt = prompt
	}

	if err := s.store.Insert(entry.ID, entry); err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

// RecentEntries returns up to limit entries, newest first
func (s *AuditStore) RecentEntries(limit int) ([]models.AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	var entries []models.AuditEntry
	query := badgerhold.Where("Timestamp").Ge(time.Time{}).SortBy("Timestamp").Reverse().Limit(limit)
	if err := s.store.Find(&entries, query); err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}

	return entries, nil
}

// Close closes the underlying database
func (s *AuditStore) Close() error {
	return s.store.Close()
}
