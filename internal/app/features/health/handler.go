// internal/app/features/health/handler.go
package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/progressrelay/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Pinger is the progress grid as seen by the health check.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	Grid Pinger
	Log  *zap.Logger
}

// NewHandler constructs a health Handler with the grid backend and logger.
func NewHandler(grid Pinger, logger *zap.Logger) *Handler {
	return &Handler{
		Grid: grid,
		Log:  logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status  string `json:"status"`
	Grid    string `json:"grid"`
	Backend string `json:"backend"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "grid":"connected", "backend":"sheets" }
//
// On grid failure: 503 and
//
//	{ "status":"error", "grid":"disconnected", "backend":"sheets", "message":"Progress grid unavailable", "error":"…"}
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:  "ok",
		Grid:    "connected",
		Backend: h.Grid.Name(),
	}

	if err := h.Grid.Ping(ctx); err != nil {
		h.Log.Error("health-check: grid ping failed", zap.String("backend", resp.Backend), zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Grid = "disconnected"
		resp.Message = "Progress grid unavailable"
		resp.Error = err.Error()
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	_ = json.NewEncoder(w).Encode(resp)
}
