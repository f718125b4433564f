package interfaces

import "context"

// LLMService is a single-attempt completion provider. Retry policy is
// layered on top by the generation client, not inside providers.
type LLMService interface {
	// Complete generates a response for the given prompt.
	Complete(ctx context.Context, prompt string) (string, error)

	// ModelName returns the configured model identifier.
	ModelName() string

	// HealthCheck verifies the provider is reachable and configured.
	HealthCheck(ctx context.Context) error

	Close() error
}

// GenerationClient wraps an LLMService with retry and audit logging.
type GenerationClient interface {
	// Generate runs the provider with the configured retry policy.
	Generate(ctx context.Context, prompt string) (string, error)

	ModelName() string
	HealthCheck(ctx context.Context) error
	Close() error
}
