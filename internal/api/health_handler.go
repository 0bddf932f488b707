package api

import (
	"context"
	"net/http"
	"time"

	"github.com/phrazzld/servicehub-api/internal/api/shared"
	"github.com/phrazzld/servicehub-api/internal/platform/logger"
	"github.com/phrazzld/servicehub-api/internal/redact"
	"github.com/phrazzld/servicehub-api/internal/store"
)

// Banner is the plain-text body of GET /.
const Banner = "ServiceHub server is running"

// healthTimeout bounds the store ping made by the health check.
const healthTimeout = 2 * time.Second

// HealthHandler serves liveness routes.
type HealthHandler struct {
	pinger store.Pinger
}

// NewHealthHandler creates a HealthHandler. A nil pinger reports the store
// as unchecked.
func NewHealthHandler(pinger store.Pinger) *HealthHandler {
	return &HealthHandler{pinger: pinger}
}

// Root handles GET /.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(Banner))
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.pinger == nil {
		shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok", Store: "unchecked"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		logger.FromContext(r.Context()).Error("store health check failed", "error", redact.Error(err))
		shared.RespondWithJSON(w, r, http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Store: "unavailable"})
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok", Store: "ok"})
}
