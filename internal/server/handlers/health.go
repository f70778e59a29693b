package handlers

import (
	"net/http"
	"time"

	"github.com/agentstation/whitelink/internal/server/response"
)

// HandleHealth handles GET /api/v1/health. It reports liveness only.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "whitelink",
		"uptime":  time.Since(h.startTime).Round(time.Second).String(),
	})
}

// HandleReady handles GET /api/v1/ready. It answers 503 while link table
// persistence is degraded.
func (h *Handlers) HandleReady(w http.ResponseWriter, _ *http.Request) {
	health := h.source.Health()
	if health.Degraded {
		response.ServiceUnavailable(w, "link table persistence is degraded", map[string]any{
			"status":     "degraded",
			"last_error": health.LastError,
			"since":      health.Since,
		})
		return
	}
	response.OK(w, map[string]any{"status": "ready"})
}
