package llm

import (
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/common"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
)

// NewGenerationClient creates the configured provider wrapped with retry
// and audit logging. The provider is selected by llm.provider.
func NewGenerationClient(cfg *common.Config, audit interfaces.AuditLogger, logger arbor.ILogger) (interfaces.GenerationClient, error) {
	baseDelay, err := time.ParseDuration(cfg.Generation.RetryBaseDelay)
	if err != nil {
		return nil, fmt.Errorf("invalid retry base delay '%s': %w", cfg.Generation.RetryBaseDelay, err)
	}

	var provider interfaces.LLMService
	switch cfg.LLM.Provider {
	case "gemini":
		provider, err = NewGeminiService(&cfg.Gemini, logger)
	case "claude":
		provider, err = NewClaudeService(&cfg.Claude, logger)
	default:
		return nil, fmt.Errorf("unsupported LLM provider '%s': must be 'gemini' or 'claude'", cfg.LLM.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s provider: %w", cfg.LLM.Provider, err)
	}

	logger.Info().
		Str("provider", cfg.LLM.Provider).
		Str("model", provider.ModelName()).
		Int("max_retry_attempts", cfg.Generation.MaxRetryAttempts).
		Msg("LLM generation client initialized")

	retry := NewRetryPolicy(cfg.Generation.MaxRetryAttempts, baseDelay, logger)
	return NewClient(provider, retry, audit, logger), nil
}

// NewNullAuditLogger returns an audit logger that discards everything,
// used when auditing is disabled and in tests.
func NewNullAuditLogger() interfaces.AuditLogger {
	return nullAuditLogger{}
}

type nullAuditLogger struct{}

func (nullAuditLogger) LogGeneration(string, int, bool, time.Duration, error, string) error {
	return nil
}

func (nullAuditLogger) RecentEntries(int) ([]models.AuditEntry, error) { return nil, nil }

func (nullAuditLogger) Close() error { return nil }
