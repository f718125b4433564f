package llm

import (
	"context"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
)

// Client wraps a provider with the retry policy and audit logging. The
// tutor pipeline talks to this, never to providers directly.
type Client struct {
	provider interfaces.LLMService
	retry    *RetryPolicy
	audit    interfaces.AuditLogger
	logger   arbor.ILogger
}

// NewClient creates a generation client over the given provider
func NewClient(provider interfaces.LLMService, retry *RetryPolicy, audit interfaces.AuditLogger, logger arbor.ILogger) *Client {
	if audit == nil {
		audit = NewNullAuditLogger()
	}
	return &Client{
		provider: provider,
		retry:    retry,
		audit:    audit,
		logger:   logger,
	}
}

// Generate runs the provider under the retry policy. Each attempt is
// logged with its number and model, and recorded in the audit log. When
// every attempt fails the last provider error is wrapped as a
// generation-kind error.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	var response string

	err := c.retry.Execute(ctx, "generate", func(ctx context.Context, attempt int) error {
		c.logger.Debug().
			Str("model", c.provider.ModelName()).
			Int("attempt", attempt+1).
			Msg("Starting generation attempt")

		start := time.Now()
		result, attemptErr := c.provider.Complete(ctx, prompt)
		duration := time.Since(start)

		if logErr := c.audit.LogGeneration(c.provider.ModelName(), attempt+1, attemptErr == nil, duration, attemptErr, prompt); logErr != nil {
			c.logger.Warn().Err(logErr).Msg("Failed to write audit entry")
		}

		if attemptErr != nil {
			return attemptErr
		}
		response = result
		return nil
	})

	if err != nil {
		return "", models.NewGenerationError("response generation failed", err)
	}

	return response, nil
}

// ModelName returns the underlying provider's model identifier
func (c *Client) ModelName() string {
	return c.provider.ModelName()
}

// HealthCheck probes the underlying provider
func (c *Client) HealthCheck(ctx context.Context) error {
	return c.provider.HealthCheck(ctx)
}

// Close releases the provider
func (c *Client) Close() error {
	return c.provider.Close()
}
