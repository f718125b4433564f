package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
	"github.com/ternarybob/doceo/internal/services/ratelimit"
)

// ChatHandler serves the /chat endpoint: rate limit, run the tutoring
// pipeline, map pipeline errors to HTTP statuses.
type ChatHandler struct {
	tutor    interfaces.TutorService
	limiter  *ratelimit.SlidingWindowLimiter
	observer interfaces.PipelineObserver
	logger   arbor.ILogger
}

// NewChatHandler creates the chat handler
func NewChatHandler(tutor interfaces.TutorService, limiter *ratelimit.SlidingWindowLimiter, observer interfaces.PipelineObserver, logger arbor.ILogger) *ChatHandler {
	if observer == nil {
		observer = interfaces.NullObserver{}
	}
	return &ChatHandler{
		tutor:    tutor,
		limiter:  limiter,
		observer: observer,
		logger:   logger,
	}
}

// ServeChat handles POST /chat
func (h *ChatHandler) ServeChat(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	requestID := uuid.NewString()
	start := time.Now()

	clientKey := ClientKey(r)
	if !h.limiter.Allow(clientKey) {
		h.observer.RateLimited()
		retryAfter := int(time.Until(h.limiter.ResetTime(clientKey)).Seconds()) + 1
		if retryAfter < 1 {
			retryAfter = 1
		}

		h.logger.Warn().
			Str("request_id", requestID).
			Str("client", clientKey).
			Int("retry_after", retryAfter).
			Msg("Request rate limited")

		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		WriteJSON(w, http.StatusTooManyRequests, models.ErrorResponse{
			Success:    false,
			Error:      "rate_limit",
			Detail:     "Too many requests. Please slow down.",
			RetryAfter: retryAfter,
			RequestID:  requestID,
		})
		return
	}

	var req models.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSON(w, http.StatusBadRequest, models.ErrorResponse{
			Success:   false,
			Error:     "invalid_request",
			Detail:    "Request body must be JSON with a 'question' field",
			RequestID: requestID,
		})
		return
	}

	answer, err := h.tutor.Answer(r.Context(), req.Question)
	if err != nil {
		h.writeError(w, requestID, err)
		return
	}

	h.logger.Info().
		Str("request_id", requestID).
		Str("client", clientKey).
		Dur("duration", time.Since(start)).
		Msg("Chat request served")

	WriteJSON(w, http.StatusOK, models.AskResponse{
		Success:          true,
		Answer:           answer,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		RequestID:        requestID,
	})
}

// writeError maps pipeline error kinds to HTTP statuses
func (h *ChatHandler) writeError(w http.ResponseWriter, requestID string, err error) {
	kind := models.KindOf(err)

	var status int
	switch kind {
	case models.ErrKindValidation:
		status = http.StatusBadRequest
	case models.ErrKindRateLimited:
		status = http.StatusTooManyRequests
	case models.ErrKindVectorStore:
		status = http.StatusServiceUnavailable
	default:
		status = http.StatusInternalServerError
	}

	h.logger.Error().
		Err(err).
		Str("request_id", requestID).
		Str("kind", string(kind)).
		Int("status", status).
		Msg("Chat request failed")

	detail := ""
	var pe *models.PipelineError
	if kind == models.ErrKindValidation && errors.As(err, &pe) {
		// Validation reasons are safe to echo back to the caller
		detail = pe.Message
	}

	WriteJSON(w, status, models.ErrorResponse{
		Success:   false,
		Error:     string(kind),
		Detail:    detail,
		RequestID: requestID,
	})
}
