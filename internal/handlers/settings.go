package handlers

import (
	"net/http"

	"github.com/diewo77/go-devis/internal/httpx"
	"github.com/diewo77/go-devis/internal/i18n"
	"github.com/diewo77/go-devis/internal/models"
	"github.com/diewo77/go-devis/internal/store"
	"github.com/diewo77/go-devis/internal/validation"
)

type SettingsHandler struct {
	settings *store.SettingsStore
}

func NewSettingsHandler(settings *store.SettingsStore) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

func (h *SettingsHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /settings", h.Edit)
	mux.HandleFunc("PUT /settings", h.Update)
}

func (h *SettingsHandler) Edit(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.settings.Get())
}

// settingsUpdate carries the fields to change; absent fields are kept.
type settingsUpdate struct {
	Theme                *models.Theme `json:"theme"`
	Language             *string       `json:"language"`
	ReceiveNotifications *bool         `json:"receive_notifications"`
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req settingsUpdate
	if !decode(w, r, &req) {
		return
	}
	v := validation.Violations{}
	if req.Theme != nil && !req.Theme.Valid() {
		v["theme"] = "invalid_theme"
	}
	if req.Language != nil && !i18n.Supported(*req.Language) {
		v["language"] = "invalid_language"
	}
	if !v.Empty() {
		writeViolations(w, r, v)
		return
	}

	if req.Theme != nil {
		if err := h.settings.SetTheme(*req.Theme); err != nil {
			writeViolations(w, r, validation.Violations{"theme": "invalid_theme"})
			return
		}
	}
	if req.Language != nil {
		h.settings.SetLanguage(*req.Language)
	}
	if req.ReceiveNotifications != nil {
		h.settings.SetReceiveNotifications(*req.ReceiveNotifications)
	}
	httpx.JSON(w, http.StatusOK, h.settings.Get())
}
