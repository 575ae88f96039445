package ledger

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes sale and invoice HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/sales", func(r chi.Router) {
		r.Post("/checkout", h.checkout) // POST /api/v1/sales/checkout
		r.Post("/quick", h.quickSale)   // POST /api/v1/sales/quick
	})
	r.Get("/api/v1/invoices", h.listInvoices)       // GET /api/v1/invoices
	r.Get("/api/v1/invoices/{id}", h.getInvoice)    // GET /api/v1/invoices/{id}
	r.Get("/api/v1/dashboard/summary", h.dashboard) // GET /api/v1/dashboard/summary
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
	}
	inv, err := h.service.CheckoutCart(r.Context(), req)
	if err != nil {
		respondSaleError(w, err)
		return
	}
	respond(w, http.StatusCreated, inv)
}

func (h *Handler) quickSale(w http.ResponseWriter, r *http.Request) {
	var req SaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	inv, err := h.service.QuickSale(r.Context(), req)
	if err != nil {
		respondSaleError(w, err)
		return
	}
	respond(w, http.StatusCreated, inv)
}

func respondSaleError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrEmptySale), strings.Contains(err.Error(), "at least 1"):
		code = http.StatusBadRequest
	case errors.Is(err, ErrSyncFailed):
		code = http.StatusBadGateway
	}
	respond(w, code, map[string]string{"error": err.Error()})
}

func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.service.ListInvoices(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, invoices)
}

func (h *Handler) getInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.service.GetInvoice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrNotFound) {
			status = http.StatusNotFound
		}
		respond(w, status, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, inv)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.DashboardSummary(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, summary)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
