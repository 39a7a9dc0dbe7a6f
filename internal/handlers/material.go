package handlers

import (
	"net/http"

	"github.com/diewo77/go-devis/internal/httpx"
	"github.com/diewo77/go-devis/internal/models"
	"github.com/diewo77/go-devis/internal/store"
	"github.com/diewo77/go-devis/internal/validation"
)

type MaterialHandler struct {
	materials *store.MaterialCatalog
}

func NewMaterialHandler(materials *store.MaterialCatalog) *MaterialHandler {
	return &MaterialHandler{materials: materials}
}

func (h *MaterialHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /materials", h.List)
	mux.HandleFunc("POST /materials", h.Create)
	mux.HandleFunc("GET /materials/{id}", h.View)
	mux.HandleFunc("PUT /materials/{id}", h.Update)
	mux.HandleFunc("DELETE /materials/{id}", h.Delete)
}

func (h *MaterialHandler) List(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.materials.List())
}

func (h *MaterialHandler) Create(w http.ResponseWriter, r *http.Request) {
	var material models.Material
	if !decode(w, r, &material) {
		return
	}
	if v := validation.ValidateMaterial(material); !v.Empty() {
		writeViolations(w, r, v)
		return
	}
	httpx.JSON(w, http.StatusCreated, h.materials.Add(material))
}

func (h *MaterialHandler) View(w http.ResponseWriter, r *http.Request) {
	material, ok := h.materials.GetByID(r.PathValue("id"))
	if !ok {
		writeCode(w, r, http.StatusNotFound, "not_found")
		return
	}
	httpx.JSON(w, http.StatusOK, material)
}

// Update changes the catalog price only; existing quotations keep the price
// they were drafted with.
func (h *MaterialHandler) Update(w http.ResponseWriter, r *http.Request) {
	var material models.Material
	if !decode(w, r, &material) {
		return
	}
	material.ID = r.PathValue("id")
	if v := validation.ValidateMaterial(material); !v.Empty() {
		writeViolations(w, r, v)
		return
	}
	if !h.materials.Update(material) {
		writeCode(w, r, http.StatusNotFound, "not_found")
		return
	}
	httpx.JSON(w, http.StatusOK, material)
}

func (h *MaterialHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.materials.Delete(r.PathValue("id")) {
		writeCode(w, r, http.StatusNotFound, "not_found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
