package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used by quotations and invoices.
const DateLayout = "2006-01-02"

// QuotationItem is one priced line of a quotation.
// PricePerUnit is captured when the line is added and may differ from the
// material's current price (e.g. a discount).
type QuotationItem struct {
	MaterialID   string  `json:"material_id"`
	Quantity     float64 `json:"quantity"`
	PricePerUnit float64 `json:"price_per_unit"`
}

// Total calculates the line amount.
func (item QuotationItem) Total() float64 {
	return LineTotal(item.Quantity, item.PricePerUnit)
}

// Quotation represents a priced offer ("devis") made to a client.
type Quotation struct {
	ID       string          `json:"id"`
	ClientID string          `json:"client_id"`
	Date     string          `json:"date"`
	Items    []QuotationItem `json:"items"`
	Total    float64         `json:"total"`
	Status   QuotationStatus `json:"status"`
}

// EntityID returns the quotation identifier.
func (q Quotation) EntityID() string { return q.ID }

// IsDraft returns true if the quotation is still a draft.
func (q Quotation) IsDraft() bool {
	return q.Status == QuotationStatusDraft
}

// IsValidated returns true for validated quotations, including invoiced ones.
func (q Quotation) IsValidated() bool {
	return q.Status == QuotationStatusValidated || q.Status == QuotationStatusInvoiced
}

// CanInvoice returns true if an invoice may be generated from the quotation.
func (q Quotation) CanInvoice() bool {
	return q.Status == QuotationStatusValidated
}

// Day parses the quotation date. ok is false when the date is malformed.
func (q Quotation) Day() (time.Time, bool) {
	return parseDay(q.Date)
}

// Clone returns a copy that shares no item storage with q.
func (q Quotation) Clone() Quotation {
	out := q
	if q.Items != nil {
		out.Items = append([]QuotationItem(nil), q.Items...)
	}
	return out
}

// SumItems calculates sum(quantity * price_per_unit) over items.
func SumItems(items []QuotationItem) float64 {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(decimal.NewFromFloat(item.Quantity).Mul(decimal.NewFromFloat(item.PricePerUnit)))
	}
	return total.InexactFloat64()
}

// LineTotal calculates quantity * unitPrice without binary rounding drift.
func LineTotal(quantity, unitPrice float64) float64 {
	return decimal.NewFromFloat(quantity).Mul(decimal.NewFromFloat(unitPrice)).InexactFloat64()
}

func parseDay(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
