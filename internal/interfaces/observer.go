package interfaces

import "time"

// PipelineObserver receives pipeline measurements. The metrics service
// implements this; tests use NullObserver.
type PipelineObserver interface {
	// StageCompleted records the duration of one pipeline stage
	// (validate, retrieve, generate, sanitize).
	StageCompleted(stage string, duration time.Duration)

	// QueryCompleted records the terminal status of one pipeline run
	// (success, no_context, validation, vector_store, generation, internal).
	QueryCompleted(status string)

	// RequestCompleted records one HTTP request.
	RequestCompleted(path, method string, status int, duration time.Duration)

	// RateLimited records one denied request.
	RateLimited()
}

// NullObserver discards all observations.
type NullObserver struct{}

func (NullObserver) StageCompleted(string, time.Duration)                {}
func (NullObserver) QueryCompleted(string)                               {}
func (NullObserver) RequestCompleted(string, string, int, time.Duration) {}
func (NullObserver) RateLimited()                                        {}
