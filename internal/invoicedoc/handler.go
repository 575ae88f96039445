package invoicedoc

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heavensbakes/pos-backend/internal/modules/ledger"
	"github.com/heavensbakes/pos-backend/internal/modules/settings"
)

// Handler exposes invoice document endpoints: PDF download and the
// WhatsApp share link.
type Handler struct {
	invoices ledger.Service
	settings settings.Service
}

func NewHandler(invoices ledger.Service, settings settings.Service) *Handler {
	return &Handler{invoices: invoices, settings: settings}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Get("/api/v1/invoices/{id}/pdf", h.pdf)     // GET /api/v1/invoices/{id}/pdf
	r.Get("/api/v1/invoices/{id}/share", h.share) // GET /api/v1/invoices/{id}/share
}

func (h *Handler) pdf(w http.ResponseWriter, r *http.Request) {
	inv, cfg, ok := h.load(w, r)
	if !ok {
		return
	}
	doc, err := RenderPDF(inv, cfg)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+Filename(inv)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func (h *Handler) share(w http.ResponseWriter, r *http.Request) {
	inv, cfg, ok := h.load(w, r)
	if !ok {
		return
	}
	respond(w, http.StatusOK, map[string]string{
		"text": WhatsAppText(inv, cfg),
		"url":  WhatsAppLink(inv, cfg),
	})
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*ledger.Invoice, *settings.Settings, bool) {
	inv, err := h.invoices.GetInvoice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ledger.ErrNotFound) {
			status = http.StatusNotFound
		}
		respond(w, status, map[string]string{"error": err.Error()})
		return nil, nil, false
	}
	cfg, err := h.settings.Get(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return nil, nil, false
	}
	return inv, cfg, true
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
