package api

import (
	"net/http"
	"time"

	"github.com/elga-energy/axiom/internal/store"
	"github.com/go-chi/chi/v5"
)

// HealthHandler reports service and store health.
type HealthHandler struct {
	repo     store.Repository
	llmMode  string
	startVal time.Time
}

// NewHealthHandler creates a health handler. llmMode names the configured
// completion provider ("openai" or "mock").
func NewHealthHandler(repo store.Repository, llmMode string) *HealthHandler {
	return &HealthHandler{repo: repo, llmMode: llmMode, startVal: time.Now()}
}

// RegisterRoutes registers the health endpoint.
func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/health", h.Health)
}

// Health responds with store connectivity and provider mode.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	dbStatus := "ok"
	if err := h.repo.Ping(r.Context()); err != nil {
		status = http.StatusServiceUnavailable
		dbStatus = "unreachable"
	}

	JSON(w, status, map[string]interface{}{
		"status":   dbStatus,
		"llm_mode": h.llmMode,
		"uptime":   time.Since(h.startVal).Round(time.Second).String(),
	})
}
