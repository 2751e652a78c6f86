package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iammorganparry/clive/apps/uigen/internal/models"
	"github.com/iammorganparry/clive/apps/uigen/internal/sessions"
	"github.com/iammorganparry/clive/apps/uigen/internal/store"
)

// SessionHandler exposes the live session store for inspection.
type SessionHandler struct {
	sessStore *sessions.Store
	persist   *sessions.Persistence
	snapshots store.Snapshots
}

// NewSessionHandler creates a new session handler. persist and snapshots may
// be nil when persistence is disabled.
func NewSessionHandler(sessStore *sessions.Store, persist *sessions.Persistence, snapshots store.Snapshots) *SessionHandler {
	return &SessionHandler{
		sessStore: sessStore,
		persist:   persist,
		snapshots: snapshots,
	}
}

// ListSessions handles GET /sessions
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"sessions": h.sessStore.List(),
	})
}

// GetSession handles GET /sessions/{id}. Sessions no longer live are read
// from their snapshot without being restored.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if sess, ok := h.sessStore.Get(id); ok {
		writeJSON(w, http.StatusOK, models.SessionDetail{
			ID:         sess.ID,
			LastActive: sess.LastActive,
			History:    sess.History,
			Component:  sess.Artifact,
		})
		return
	}

	if h.snapshots != nil && store.ValidID(id) {
		snap, err := h.snapshots.Load(id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if snap != nil {
			writeJSON(w, http.StatusOK, models.SessionDetail{
				ID:        id,
				History:   snap.History,
				Component: snap.Component,
			})
			return
		}
	}

	writeError(w, http.StatusNotFound, "session not found")
}

// DeleteSession handles DELETE /sessions/{id}, removing live state and any snapshot.
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !store.ValidID(id) {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	unlock := h.sessStore.Lock(id)
	defer unlock()

	h.sessStore.Delete(id)
	if h.persist != nil {
		h.persist.Purge(id)
	}

	w.WriteHeader(http.StatusNoContent)
}
