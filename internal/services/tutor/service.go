package tutor

import (
	"context"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
)

// Service orchestrates the tutoring pipeline: validate the question,
// retrieve and assemble context, build the prompt, generate an answer
// with retry and sanitize the result.
type Service struct {
	retriever *Retriever
	generator interfaces.GenerationClient
	observer  interfaces.PipelineObserver
	maxChunks int
	logger    arbor.ILogger
}

// NewService wires the pipeline from its collaborators
func NewService(retriever *Retriever, generator interfaces.GenerationClient, observer interfaces.PipelineObserver, maxChunks int, logger arbor.ILogger) *Service {
	if observer == nil {
		observer = interfaces.NullObserver{}
	}
	return &Service{
		retriever: retriever,
		generator: generator,
		observer:  observer,
		maxChunks: maxChunks,
		logger:    logger,
	}
}

// Answer runs the full pipeline for one question. When no passage
// survives the similarity threshold the fixed fallback answer is returned
// and the generator is not called.
func (s *Service) Answer(ctx context.Context, question string) (string, error) {
	start := time.Now()

	if err := s.timed("validate", func() error { return ValidateQuestion(question) }); err != nil {
		s.observer.QueryCompleted(string(models.KindOf(err)))
		return "", err
	}

	var passages []models.Passage
	err := s.timed("retrieve", func() error {
		var retrieveErr error
		passages, retrieveErr = s.retriever.Retrieve(ctx, question)
		return retrieveErr
	})
	if err != nil {
		s.observer.QueryCompleted(string(models.KindOf(err)))
		return "", err
	}

	assembled := AssembleContext(passages, s.maxChunks)
	if len(assembled) == 0 {
		s.logger.Info().
			Str("question", question).
			Msg("No relevant context found, returning fallback answer")
		s.observer.QueryCompleted("no_context")
		return noContextAnswer, nil
	}

	prompt := BuildPrompt(assembled, question)

	var raw string
	err = s.timed("generate", func() error {
		var genErr error
		raw, genErr = s.generator.Generate(ctx, prompt)
		return genErr
	})
	if err != nil {
		s.observer.QueryCompleted(string(models.KindOf(err)))
		return "", err
	}

	var answer string
	_ = s.timed("sanitize", func() error {
		answer = SanitizeAnswer(raw)
		return nil
	})

	s.logger.Info().
		Int("context_chunks", len(assembled)).
		Int("answer_length", len(answer)).
		Dur("duration", time.Since(start)).
		Msg("Question answered")
	s.observer.QueryCompleted("success")

	return answer, nil
}

// timed runs fn and reports its duration to the observer
func (s *Service) timed(stage string, fn func() error) error {
	start := time.Now()
	err := fn()
	s.observer.StageCompleted(stage, time.Since(start))
	return err
}
