package handlers

import (
	"net/http"

	"github.com/diewo77/go-devis/internal/httpx"
	"github.com/diewo77/go-devis/internal/models"
	"github.com/diewo77/go-devis/internal/store"
	"github.com/diewo77/go-devis/internal/validation"
)

type ClientHandler struct {
	clients *store.ClientDirectory
}

func NewClientHandler(clients *store.ClientDirectory) *ClientHandler {
	return &ClientHandler{clients: clients}
}

func (h *ClientHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /clients", h.List)
	mux.HandleFunc("POST /clients", h.Create)
	mux.HandleFunc("GET /clients/{id}", h.View)
	mux.HandleFunc("PUT /clients/{id}", h.Update)
	mux.HandleFunc("DELETE /clients/{id}", h.Delete)
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.clients.List())
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var client models.Client
	if !decode(w, r, &client) {
		return
	}
	if v := validation.ValidateClient(client); !v.Empty() {
		writeViolations(w, r, v)
		return
	}
	httpx.JSON(w, http.StatusCreated, h.clients.Add(client))
}

func (h *ClientHandler) View(w http.ResponseWriter, r *http.Request) {
	client, ok := h.clients.GetByID(r.PathValue("id"))
	if !ok {
		writeCode(w, r, http.StatusNotFound, "not_found")
		return
	}
	httpx.JSON(w, http.StatusOK, client)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var client models.Client
	if !decode(w, r, &client) {
		return
	}
	client.ID = r.PathValue("id")
	if v := validation.ValidateClient(client); !v.Empty() {
		writeViolations(w, r, v)
		return
	}
	if !h.clients.Update(client) {
		writeCode(w, r, http.StatusNotFound, "not_found")
		return
	}
	httpx.JSON(w, http.StatusOK, client)
}

// Delete removes the client only. Quotations and invoices keep their
// client_id and render it as unknown.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.clients.Delete(r.PathValue("id")) {
		writeCode(w, r, http.StatusNotFound, "not_found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
