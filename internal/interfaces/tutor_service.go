package interfaces

import "context"

// TutorService answers mathematics questions over the indexed corpus.
type TutorService interface {
	// Answer runs the full pipeline for one question: validation, context
	// retrieval, prompt construction, generation and sanitization.
	// Failures are returned as *models.PipelineError.
	Answer(ctx context.Context, question string) (string, error)
}
