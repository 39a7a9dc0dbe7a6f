// Package handlers exposes the stores and services as a JSON API.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/diewo77/go-devis/internal/httpx"
	"github.com/diewo77/go-devis/internal/i18n"
	"github.com/diewo77/go-devis/internal/models"
	"github.com/diewo77/go-devis/internal/services"
	"github.com/diewo77/go-devis/internal/store"
	"github.com/diewo77/go-devis/internal/validation"
)

func lang(r *http.Request) string {
	return i18n.FromContext(r.Context())
}

func writeCode(w http.ResponseWriter, r *http.Request, status int, code string) {
	httpx.JSONError(w, status, code, i18n.T(lang(r), code), nil)
}

func writeViolations(w http.ResponseWriter, r *http.Request, v validation.Violations) {
	l := lang(r)
	httpx.JSONError(w, http.StatusUnprocessableEntity, "validation_failed",
		i18n.T(l, "validation_failed"), i18n.TranslateAll(l, v))
}

// writeError maps domain errors to HTTP statuses. Unknown errors are logged
// and reported as 500.
func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeCode(w, r, http.StatusNotFound, "not_found")
	case errors.Is(err, models.ErrInvalidStatus):
		writeCode(w, r, http.StatusUnprocessableEntity, "invalid_status")
	case errors.Is(err, models.ErrInvalidTransition):
		writeCode(w, r, http.StatusConflict, "invalid_transition")
	case errors.Is(err, services.ErrQuotationNotValidated):
		writeCode(w, r, http.StatusConflict, "quotation_not_validated")
	case errors.Is(err, services.ErrInvalidRule):
		httpx.JSONError(w, http.StatusBadRequest, "invalid_rule", i18n.T(lang(r), "invalid_rule"), err.Error())
	default:
		log.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeCode(w, r, http.StatusInternalServerError, "internal_error")
	}
}

// decode reads the JSON body into v and answers 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := httpx.DecodeJSON(w, r, v); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", i18n.T(lang(r), "invalid_json"), err.Error())
		return false
	}
	return true
}

func queryInt(r *http.Request, key string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(key))
	return n
}

func queryBool(r *http.Request, key string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(key))
	return b
}

type statusRequest struct {
	Status string `json:"status"`
}
