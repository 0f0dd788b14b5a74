// Package diag exposes a small diagnostics surface over plain HTTP,
// separate from the MCP listener.
package diag

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/abaplab/adtbridge/internal/telemetry"
)

// Handlers holds dependencies for the diagnostics endpoints.
type Handlers struct {
	metrics *telemetry.Recorder
	logger  *slog.Logger
}

func NewHandlers(metrics *telemetry.Recorder, logger *slog.Logger) *Handlers {
	return &Handlers{
		metrics: metrics,
		logger:  logger.With("component", "diag_handler"),
	}
}

// RegisterRoutes sets up the diagnostics routes.
func (h *Handlers) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /debug/stats", h.handleStats)
}

// handleStats implements GET /debug/stats, returning a read-only snapshot of
// the invocation counters.
func (h *Handlers) handleStats(w http.ResponseWriter, r *http.Request) {
	snapshot := h.metrics.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"attempted":          snapshot.Attempted,
		"succeeded":          snapshot.Succeeded,
		"failed":             snapshot.Failed,
		"average_latency_ms": snapshot.AverageLatency.Milliseconds(),
	}); err != nil {
		h.logger.Warn("Failed to write stats response.", slog.Any("error", err))
	}
}
