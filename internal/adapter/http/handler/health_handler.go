package handler

import (
	"context"
	"net/http"
	"time"
)

// Pinger is implemented by snapshot stores backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	store     Pinger
	storeName string
}

// NewHealthHandler creates a new HealthHandler. store may be nil when the
// active snapshot store has nothing to check.
func NewHealthHandler(storeName string, store Pinger) *HealthHandler {
	return &HealthHandler{
		store:     store,
		storeName: storeName,
	}
}

// Liveness returns 200 if the service is alive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness returns 200 if the snapshot store is reachable.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if h.store != nil {
		if err := h.store.Ping(ctx); err != nil {
			writeError(w, http.StatusServiceUnavailable, h.storeName+" unhealthy", err.Error())
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
		"store":  h.storeName,
	})
}
