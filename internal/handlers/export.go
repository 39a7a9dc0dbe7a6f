package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/diewo77/go-devis/internal/export"
	"github.com/diewo77/go-devis/internal/httpx"
	"github.com/diewo77/go-devis/internal/services"
	"github.com/diewo77/go-devis/internal/store"
	"github.com/diewo77/go-devis/internal/validation"
)

const maxUpload = 10 << 20

type ExportHandler struct {
	stores   *store.Stores
	resolver *services.Resolver
	log      *slog.Logger
	now      func() time.Time
}

func NewExportHandler(s *store.Stores, resolver *services.Resolver, log *slog.Logger) *ExportHandler {
	return &ExportHandler{stores: s, resolver: resolver, log: log, now: time.Now}
}

func (h *ExportHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /export/quotations.xlsx", h.Quotations)
	mux.HandleFunc("GET /export/invoices.xlsx", h.Invoices)
	mux.HandleFunc("GET /export/materials.xlsx", h.Materials)
	mux.HandleFunc("POST /import/materials", h.ImportMaterials)
}

// sendWorkbook buffers the workbook so a failure can still become a JSON
// error.
func (h *ExportHandler) sendWorkbook(w http.ResponseWriter, r *http.Request, name string, write func(io.Writer) error) {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	filename := fmt.Sprintf("%s_%s.xlsx", name, h.now().Format("20060102_150405"))
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *ExportHandler) Quotations(w http.ResponseWriter, r *http.Request) {
	h.sendWorkbook(w, r, "devis", func(out io.Writer) error {
		return export.WriteQuotations(out, h.stores.Quotations.List(), h.resolver, lang(r))
	})
}

func (h *ExportHandler) Invoices(w http.ResponseWriter, r *http.Request) {
	h.sendWorkbook(w, r, "factures", func(out io.Writer) error {
		return export.WriteInvoices(out, h.stores.Invoices.List(), h.resolver, lang(r))
	})
}

func (h *ExportHandler) Materials(w http.ResponseWriter, r *http.Request) {
	h.sendWorkbook(w, r, "materiaux", func(out io.Writer) error {
		return export.WriteMaterials(out, h.stores.Materials.List(), lang(r))
	})
}

// ImportMaterials accepts the workbook either as a multipart "file" field or
// as the raw request body. Nothing is imported unless every row is valid.
func (h *ExportHandler) ImportMaterials(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
	body := io.Reader(r.Body)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			writeCode(w, r, http.StatusBadRequest, "invalid_file")
			return
		}
		defer file.Close()
		body = file
	}

	materials, err := export.ReadMaterials(body)
	var rowErr *export.RowError
	switch {
	case errors.As(err, &rowErr):
		writeViolations(w, r, validation.Violations{
			fmt.Sprintf("row %d.%s", rowErr.Row, rowErr.Field): rowErr.Code,
		})
		return
	case errors.Is(err, export.ErrNoRows):
		writeCode(w, r, http.StatusUnprocessableEntity, "empty_file")
		return
	case err != nil:
		writeCode(w, r, http.StatusBadRequest, "invalid_file")
		return
	}
	httpx.JSON(w, http.StatusOK, services.ImportMaterials(h.stores.Materials, materials))
}
