package handlers

import (
	"net/http"
	"time"

	"github.com/diewo77/go-devis/internal/httpx"
	"github.com/diewo77/go-devis/internal/services"
)

type DashboardHandler struct {
	dashboard *services.Dashboard
	now       func() time.Time
}

func NewDashboardHandler(d *services.Dashboard) *DashboardHandler {
	return &DashboardHandler{dashboard: d, now: time.Now}
}

func (h *DashboardHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /dashboard", h.Show)
}

func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.dashboard.Stats(h.now()))
}
