package health

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heavensbakes/pos-backend/internal/store"
)

// Handler reports sync state of the collection mirrors. A lost subscription
// shows up here as a degraded status for the UI to surface.
type Handler struct {
	mirrors map[string]*store.Mirror
}

func NewHandler(mirrors map[string]*store.Mirror) *Handler {
	return &Handler{mirrors: mirrors}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Get("/api/v1/status", h.status) // GET /api/v1/status
}

type collectionStatus struct {
	Documents int    `json:"documents"`
	Error     string `json:"error,omitempty"`
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	overall := "ok"
	collections := make(map[string]collectionStatus, len(h.mirrors))
	for name, m := range h.mirrors {
		cs := collectionStatus{Documents: m.Len()}
		if err := m.Err(); err != nil {
			cs.Error = err.Error()
			overall = "degraded"
		}
		collections[name] = cs
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":      overall,
		"collections": collections,
	})
}
