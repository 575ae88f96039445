package backup

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// Handler exposes backup HTTP endpoints.
type Handler struct {
	service Service
	guard   func(http.Handler) http.Handler
}

// NewHandler creates a backup handler; guard protects the import route.
func NewHandler(service Service, guard func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, guard: guard}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/backup", func(r chi.Router) {
		r.Get("/export", h.export) // GET  /api/v1/backup/export
		r.Group(func(r chi.Router) {
			r.Use(h.guard)
			r.Post("/import", h.importSnapshot) // POST /api/v1/backup/import
		})
	})
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Export(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	filename := "heavens-bakes-" + time.Now().Format("2006-01-02") + ".json"
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(snap)
}

func (h *Handler) importSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Import(r.Context(), r.Body)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "invalid backup file") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"message":  "backup imported",
		"products": len(snap.Products),
		"clients":  len(snap.Clients),
		"invoices": len(snap.Invoices),
	})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
