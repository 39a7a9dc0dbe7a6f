// Package export writes quotations, invoices and the material price list to
// xlsx workbooks, and reads price lists back.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/diewo77/go-devis/internal/i18n"
	"github.com/diewo77/go-devis/internal/models"
)

// ContentType is the media type of the produced workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ErrNoRows is returned when a workbook has no data row.
var ErrNoRows = errors.New("no_rows")

// Names resolves client identifiers to display names.
type Names interface {
	ClientName(id string) (string, bool)
}

// RowError locates a bad cell in an imported workbook. Row is 1-based as in
// the spreadsheet.
type RowError struct {
	Row   int
	Field string
	Code  string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s: %s", e.Row, e.Field, e.Code)
}

func clientLabel(names Names, lang, id string) string {
	if name, ok := names.ClientName(id); ok {
		return name
	}
	return i18n.T(lang, "unknown_client")
}

func header(lang string, codes ...string) []any {
	out := make([]any, len(codes))
	for i, c := range codes {
		out[i] = i18n.T(lang, c)
	}
	return out
}

// WriteQuotations writes one row per quotation.
func WriteQuotations(w io.Writer, quotations []models.Quotation, names Names, lang string) error {
	rows := make([][]any, 0, len(quotations))
	for _, q := range quotations {
		rows = append(rows, []any{
			q.ID,
			clientLabel(names, lang, q.ClientID),
			q.Date,
			len(q.Items),
			q.Total,
			i18n.T(lang, string(q.Status)),
		})
	}
	return write(w, header(lang, "col_id", "col_client", "col_date", "col_items", "col_total", "col_status"), rows)
}

// WriteInvoices writes one row per invoice.
func WriteInvoices(w io.Writer, invoices []models.Invoice, names Names, lang string) error {
	rows := make([][]any, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, []any{
			inv.ID,
			inv.QuotationID,
			clientLabel(names, lang, inv.ClientID),
			inv.Date,
			inv.Total,
			i18n.T(lang, string(inv.Status)),
		})
	}
	return write(w, header(lang, "col_id", "col_quotation", "col_client", "col_date", "col_total", "col_status"), rows)
}

// WriteMaterials writes the price list in the layout ReadMaterials expects.
func WriteMaterials(w io.Writer, materials []models.Material, lang string) error {
	rows := make([][]any, 0, len(materials))
	for _, m := range materials {
		rows = append(rows, []any{m.ID, m.Name, m.Unit, m.PricePerUnit})
	}
	return write(w, header(lang, "col_id", "col_name", "col_unit", "col_unit_price"), rows)
}

func write(w io.Writer, head []any, rows [][]any) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return f.Write(w)
}

// ReadMaterials parses a price list: id, name, unit, price_per_unit. The
// first row is a header. An empty id means a new material. Prices accept a
// decimal comma.
func ReadMaterials(r io.Reader) ([]models.Material, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(f.GetActiveSheetIndex()))
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, ErrNoRows
	}

	var out []models.Material
	for i := 1; i < len(rows); i++ {
		row := make([]string, 4)
		for j := 0; j < len(row) && j < len(rows[i]); j++ {
			row[j] = strings.TrimSpace(rows[i][j])
		}
		if strings.Join(row, "") == "" {
			continue
		}
		m := models.Material{ID: row[0], Name: row[1], Unit: row[2]}
		if m.Name == "" {
			return nil, &RowError{Row: i + 1, Field: "name", Code: "required"}
		}
		if m.Unit == "" {
			return nil, &RowError{Row: i + 1, Field: "unit", Code: "required"}
		}
		price, err := strconv.ParseFloat(strings.ReplaceAll(row[3], ",", "."), 64)
		if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
			return nil, &RowError{Row: i + 1, Field: "price_per_unit", Code: "required"}
		}
		if price < 0 {
			return nil, &RowError{Row: i + 1, Field: "price_per_unit", Code: "must_not_be_negative"}
		}
		m.PricePerUnit = price
		out = append(out, m)
	}
	if len(out) == 0 {
		return nil, ErrNoRows
	}
	return out, nil
}
