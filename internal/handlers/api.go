package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/common"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
	"github.com/ternarybob/doceo/internal/services/ratelimit"
)

// APIHandler serves the health, status and version endpoints
type APIHandler struct {
	store     interfaces.VectorStore
	generator interfaces.GenerationClient
	audit     interfaces.AuditLogger
	limiter   *ratelimit.SlidingWindowLimiter
	logger    arbor.ILogger
	started   time.Time
}

// NewAPIHandler creates the API handler
func NewAPIHandler(store interfaces.VectorStore, generator interfaces.GenerationClient, audit interfaces.AuditLogger, limiter *ratelimit.SlidingWindowLimiter, logger arbor.ILogger) *APIHandler {
	return &APIHandler{
		store:     store,
		generator: generator,
		audit:     audit,
		limiter:   limiter,
		logger:    logger,
		started:   time.Now(),
	}
}

// ServeHealth handles GET /health
func (h *APIHandler) ServeHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": common.GetVersion(),
	})
}

// ServeLiveness handles GET /health/live. The process is alive if it can
// answer at all.
func (h *APIHandler) ServeLiveness(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// ServeReadiness handles GET /health/ready. Readiness requires the vector
// store to be usable; the LLM provider is checked but only reported, since
// a transient provider outage should not pull the service out of rotation
// while retries can still succeed.
func (h *APIHandler) ServeReadiness(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]string{}
	ready := true

	if err := h.store.HealthCheck(ctx); err != nil {
		checks["vector_store"] = err.Error()
		ready = false
	} else {
		checks["vector_store"] = "ok"
	}

	if h.generator == nil {
		checks["llm"] = "not configured"
	} else {
		checks["llm"] = "ok"
	}

	status := http.StatusOK
	state := "ready"
	if !ready {
		status = http.StatusServiceUnavailable
		state = "not_ready"
	}

	WriteJSON(w, status, map[string]interface{}{
		"status": state,
		"checks": checks,
	})
}

// ServeStatus handles GET /status with operational detail
func (h *APIHandler) ServeStatus(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	count, err := h.store.Count(r.Context())
	if err != nil {
		h.logger.Warn().Err(err).Msg("Failed to count indexed passages")
		count = -1
	}

	var recent []models.AuditEntry
	if h.audit != nil {
		recent, err = h.audit.RecentEntries(10)
		if err != nil {
			h.logger.Warn().Err(err).Msg("Failed to load recent audit entries")
		}
	}

	model := ""
	if h.generator != nil {
		model = h.generator.ModelName()
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"version":          common.GetFullVersion(),
		"uptime_seconds":   int(time.Since(h.started).Seconds()),
		"indexed_passages": count,
		"model":            model,
		"active_clients":   h.limiter.ActiveClients(),
		"recent_audit":     recent,
	})
}

// ServeVersion handles GET /version
func (h *APIHandler) ServeVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.Build,
		"commit":  common.GitCommit,
	})
}
