package models

import "time"

// InvoiceItem represents a line item on an invoice.
// TotalPrice is fixed when the invoice is generated.
type InvoiceItem struct {
	MaterialID   string  `json:"material_id"`
	Quantity     float64 `json:"quantity"`
	PricePerUnit float64 `json:"price_per_unit"`
	TotalPrice   float64 `json:"total_price"`
}

// Invoice represents a billing invoice generated from a quotation.
// Total is frozen at generation time and never recomputed.
type Invoice struct {
	ID          string        `json:"id"`
	QuotationID string        `json:"quotation_id"`
	ClientID    string        `json:"client_id"`
	Date        string        `json:"date"`
	Items       []InvoiceItem `json:"items"`
	Total       float64       `json:"total"`
	Status      InvoiceStatus `json:"status"`
}

// EntityID returns the invoice identifier.
func (i Invoice) EntityID() string { return i.ID }

// IsPaid returns true if the invoice has been fully paid.
func (i Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}

// IsOpen returns true while a payment is still expected.
func (i Invoice) IsOpen() bool {
	return i.Status == InvoiceStatusIssued || i.Status == InvoiceStatusPartiallyPaid || i.Status == InvoiceStatusOverdue
}

// ItemsTotal sums the frozen line totals. It may differ from Total when an
// invoice was edited after generation.
func (i Invoice) ItemsTotal() float64 {
	var total float64
	for _, item := range i.Items {
		total += item.TotalPrice
	}
	return total
}

// Day parses the invoice date. ok is false when the date is malformed.
func (i Invoice) Day() (time.Time, bool) {
	return parseDay(i.Date)
}

// Clone returns a copy that shares no item storage with i.
func (i Invoice) Clone() Invoice {
	out := i
	if i.Items != nil {
		out.Items = append([]InvoiceItem(nil), i.Items...)
	}
	return out
}

// InvoiceItemsFrom copies quotation lines into invoice lines, computing each
// line's total price.
func InvoiceItemsFrom(items []QuotationItem) []InvoiceItem {
	out := make([]InvoiceItem, 0, len(items))
	for _, item := range items {
		out = append(out, InvoiceItem{
			MaterialID:   item.MaterialID,
			Quantity:     item.Quantity,
			PricePerUnit: item.PricePerUnit,
			TotalPrice:   item.Total(),
		})
	}
	return out
}
