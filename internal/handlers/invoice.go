package handlers

import (
	"log/slog"
	"net/http"

	"github.com/diewo77/go-devis/internal/httpx"
	"github.com/diewo77/go-devis/internal/models"
	"github.com/diewo77/go-devis/internal/services"
	"github.com/diewo77/go-devis/internal/store"
	"github.com/diewo77/go-devis/internal/validation"
)

type InvoiceHandler struct {
	invoices *store.InvoiceLedger
	billing  *services.Billing
	log      *slog.Logger
}

func NewInvoiceHandler(invoices *store.InvoiceLedger, billing *services.Billing, log *slog.Logger) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, billing: billing, log: log}
}

func (h *InvoiceHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /invoices", h.List)
	mux.HandleFunc("GET /invoices/{id}", h.View)
	mux.HandleFunc("PUT /invoices/{id}", h.Update)
	mux.HandleFunc("DELETE /invoices/{id}", h.Delete)
	mux.HandleFunc("POST /invoices/{id}/status", h.UpdateStatus)
}

// List supports ?status=, ?quotation_id=, ?page= and ?per_page=.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	status := models.InvoiceStatus(r.URL.Query().Get("status"))
	quotationID := r.URL.Query().Get("quotation_id")

	var matched []models.Invoice
	for _, inv := range h.invoices.List() {
		if status != "" && inv.Status != status {
			continue
		}
		if quotationID != "" && inv.QuotationID != quotationID {
			continue
		}
		matched = append(matched, inv)
	}
	httpx.JSON(w, http.StatusOK, services.Paginate(matched, queryInt(r, "page"), queryInt(r, "per_page")))
}

func (h *InvoiceHandler) View(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.invoices.GetByID(r.PathValue("id"))
	if !ok {
		writeCode(w, r, http.StatusNotFound, "not_found")
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

type invoiceUpdate struct {
	Date  string               `json:"date"`
	Items []models.InvoiceItem `json:"items"`
	Total float64              `json:"total"`
}

// Update edits date, items and total. The total is stored as sent, never
// derived from the items; origin and status in force when the edit lands are
// kept.
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !h.invoices.Has(id) {
		writeCode(w, r, http.StatusNotFound, "not_found")
		return
	}
	var req invoiceUpdate
	if !decode(w, r, &req) {
		return
	}
	v := validation.Violations{}
	validation.Date("date", req.Date, v)
	validation.NonNegativeFloat("total", req.Total, v)
	validation.ValidateInvoiceItems(req.Items, v)
	if !v.Empty() {
		writeViolations(w, r, v)
		return
	}
	for i := range req.Items {
		req.Items[i].TotalPrice = models.LineTotal(req.Items[i].Quantity, req.Items[i].PricePerUnit)
	}
	updated, err := h.invoices.Edit(id, req.Date, req.Items, req.Total)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.invoices.Delete(r.PathValue("id")) {
		writeCode(w, r, http.StatusNotFound, "not_found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *InvoiceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !decode(w, r, &req) {
		return
	}
	inv, err := h.billing.UpdateInvoiceStatus(r.Context(), r.PathValue("id"), models.InvoiceStatus(req.Status))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}
