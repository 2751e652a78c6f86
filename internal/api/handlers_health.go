package api

import (
	"net/http"

	"github.com/iammorganparry/clive/apps/uigen/internal/models"
	"github.com/iammorganparry/clive/apps/uigen/internal/sessions"
	"github.com/iammorganparry/clive/apps/uigen/internal/store"
)

type HealthHandler struct {
	sessStore *sessions.Store
	snapshots store.Snapshots
}

func NewHealthHandler(sessStore *sessions.Store, snapshots store.Snapshots) *HealthHandler {
	return &HealthHandler{sessStore: sessStore, snapshots: snapshots}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{
		Status:       "ok",
		SessionCount: h.sessStore.Len(),
	}

	// Snapshots are advisory, so a failing backend degrades but does not fail health.
	if h.snapshots == nil {
		resp.Persistence = models.ServiceCheck{Status: "disabled"}
	} else if err := h.snapshots.Ping(); err != nil {
		resp.Persistence = models.ServiceCheck{Status: "error", Message: err.Error()}
		resp.Status = "degraded"
	} else {
		resp.Persistence = models.ServiceCheck{Status: "ok"}
	}

	writeJSON(w, http.StatusOK, resp)
}
