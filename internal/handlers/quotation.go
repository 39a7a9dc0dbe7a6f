package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/diewo77/go-devis/internal/httpx"
	"github.com/diewo77/go-devis/internal/models"
	"github.com/diewo77/go-devis/internal/services"
	"github.com/diewo77/go-devis/internal/store"
	"github.com/diewo77/go-devis/internal/validation"
)

type QuotationHandler struct {
	stores   *store.Stores
	resolver *services.Resolver
	billing  *services.Billing
	log      *slog.Logger
	now      func() time.Time
}

func NewQuotationHandler(s *store.Stores, resolver *services.Resolver, billing *services.Billing, log *slog.Logger) *QuotationHandler {
	return &QuotationHandler{stores: s, resolver: resolver, billing: billing, log: log, now: time.Now}
}

func (h *QuotationHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /quotations", h.List)
	mux.HandleFunc("POST /quotations", h.Create)
	mux.HandleFunc("GET /quotations/{id}", h.View)
	mux.HandleFunc("PUT /quotations/{id}", h.Update)
	mux.HandleFunc("DELETE /quotations/{id}", h.Delete)
	mux.HandleFunc("POST /quotations/{id}/status", h.UpdateStatus)
	mux.HandleFunc("POST /quotations/{id}/invoice", h.GenerateInvoice)
}

// quotationRequest is the editable part of a quotation. Status only changes
// through UpdateStatus.
type quotationRequest struct {
	ClientID string                 `json:"client_id"`
	Date     string                 `json:"date"`
	Items    []models.QuotationItem `json:"items"`
}

type quotationView struct {
	models.Quotation
	ClientName string `json:"client_name"`
}

func (h *QuotationHandler) view(q models.Quotation) quotationView {
	return quotationView{Quotation: q, ClientName: h.resolver.ClientLabel(q.ClientID)}
}

func (h *QuotationHandler) validate(q models.Quotation) validation.Violations {
	return validation.ValidateQuotation(q, h.stores.Clients.Has, h.stores.Materials.Has)
}

// List supports ?q=, ?validated=true, ?status=, ?where=, ?page= and ?per_page=.
func (h *QuotationHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, err := h.resolver.SearchQuotations(services.QuotationFilter{
		Term:          query.Get("q"),
		OnlyValidated: queryBool(r, "validated"),
		Status:        models.QuotationStatus(query.Get("status")),
		Where:         query.Get("where"),
		Page:          queryInt(r, "page"),
		PerPage:       queryInt(r, "per_page"),
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	views := make([]quotationView, len(page.Items))
	for i, q := range page.Items {
		views[i] = h.view(q)
	}
	httpx.JSON(w, http.StatusOK, services.Page[quotationView]{
		Items: views, Total: page.Total, Page: page.Page, Pages: page.Pages,
	})
}

// Create records a draft. An empty date means today.
func (h *QuotationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req quotationRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Date == "" {
		req.Date = h.now().Format(models.DateLayout)
	}
	if v := h.validate(models.Quotation{ClientID: req.ClientID, Date: req.Date, Items: req.Items}); !v.Empty() {
		writeViolations(w, r, v)
		return
	}
	q := h.stores.Quotations.Add(req.ClientID, req.Date, req.Items)
	httpx.JSON(w, http.StatusCreated, h.view(q))
}

func (h *QuotationHandler) View(w http.ResponseWriter, r *http.Request) {
	q, ok := h.stores.Quotations.GetByID(r.PathValue("id"))
	if !ok {
		writeCode(w, r, http.StatusNotFound, "not_found")
		return
	}
	httpx.JSON(w, http.StatusOK, h.view(q))
}

// Update edits client, date and items. The status in force when the edit
// lands is kept.
func (h *QuotationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !h.stores.Quotations.Has(id) {
		writeCode(w, r, http.StatusNotFound, "not_found")
		return
	}
	var req quotationRequest
	if !decode(w, r, &req) {
		return
	}
	if v := h.validate(models.Quotation{ClientID: req.ClientID, Date: req.Date, Items: req.Items}); !v.Empty() {
		writeViolations(w, r, v)
		return
	}
	updated, err := h.stores.Quotations.Edit(id, req.ClientID, req.Date, req.Items)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, h.view(updated))
}

func (h *QuotationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.stores.Quotations.Delete(r.PathValue("id")) {
		writeCode(w, r, http.StatusNotFound, "not_found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *QuotationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !decode(w, r, &req) {
		return
	}
	id := r.PathValue("id")
	if err := h.stores.Quotations.UpdateStatus(id, models.QuotationStatus(req.Status)); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	q, _ := h.stores.Quotations.GetByID(id)
	httpx.JSON(w, http.StatusOK, h.view(q))
}

type invoiceRequest struct {
	Date string `json:"date"`
}

// GenerateInvoice invoices a validé quotation. The body is optional.
func (h *QuotationHandler) GenerateInvoice(w http.ResponseWriter, r *http.Request) {
	var req invoiceRequest
	if r.ContentLength != 0 && !decode(w, r, &req) {
		return
	}
	if req.Date != "" {
		v := validation.Violations{}
		validation.Date("date", req.Date, v)
		if !v.Empty() {
			writeViolations(w, r, v)
			return
		}
	}
	inv, err := h.billing.GenerateInvoice(r.Context(), r.PathValue("id"), req.Date)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, inv)
}
