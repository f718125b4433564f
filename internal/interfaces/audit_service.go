package interfaces

import (
	"time"

	"github.com/ternarybob/doceo/internal/models"
)

// AuditLogger records LLM operations for later inspection.
type AuditLogger interface {
	// LogGeneration records one completion attempt. attempt is the
	// one-based attempt number within a retried generation.
	LogGeneration(model string, attempt int, success bool, duration time.Duration, err error, prompt string) error

	// RecentEntries returns up to limit entries, newest first.
	RecentEntries(limit int) ([]models.AuditEntry, error)

	Close() error
}
