package llm

import (
	"context"
	"time"

	"github.com/ternarybob/arbor"
)

// RetryPolicy retries an operation with exponential backoff: attempt n
// (zero-based) sleeps BaseDelay * 2^n before the next try. The sleep
// function is injectable so tests run without waiting.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Sleep       func(ctx context.Context, d time.Duration) error
	Logger      arbor.ILogger
}

// NewRetryPolicy creates a policy with a context-aware sleep
func NewRetryPolicy(maxAttempts int, baseDelay time.Duration, logger arbor.ILogger) *RetryPolicy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if baseDelay <= 0 {
		baseDelay = time.Second
	}
	return &RetryPolicy{
		MaxAttempts: maxAttempts,
		BaseDelay:   baseDelay,
		Sleep:       sleepWithContext,
		Logger:      logger,
	}
}

// Backoff returns the delay after the given zero-based attempt
func (p *RetryPolicy) Backoff(attempt int) time.Duration {
	return p.BaseDelay * (1 << attempt)
}

// Execute runs fn up to MaxAttempts times, backing off between failures.
// fn receives the zero-based attempt number. The error from the final
// attempt is returned when all attempts fail.
func (p *RetryPolicy) Execute(ctx context.Context, operation string, fn func(ctx context.Context, attempt int) error) error {
	var lastErr error

	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		p.Logger.Debug().
			Str("operation", operation).
			Int("attempt", attempt+1).
			Int("max_attempts", p.MaxAttempts).
			Msg("Starting attempt")

		lastErr = fn(ctx, attempt)
		if lastErr == nil {
			return nil
		}

		if attempt == p.MaxAttempts-1 {
			break
		}

		backoff := p.Backoff(attempt)
		p.Logger.Warn().
			Err(lastErr).
			Str("operation", operation).
			Int("attempt", attempt+1).
			Int("max_attempts", p.MaxAttempts).
			Dur("backoff", backoff).
			Msg("Operation failed, retrying")

		if err := p.Sleep(ctx, backoff); err != nil {
			return err
		}
	}

	return lastErr
}

// sleepWithContext waits for d or until the context is cancelled
func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
