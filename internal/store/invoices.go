package store

import (
	"fmt"

	"github.com/diewo77/go-devis/internal/idgen"
	"github.com/diewo77/go-devis/internal/models"
)

// InvoiceDraft carries the fields of an invoice about to be recorded. Items
// and Total come already computed from the originating quotation.
type InvoiceDraft struct {
	QuotationID string
	ClientID    string
	Date        string
	Items       []models.InvoiceItem
	Total       float64
	// Status defaults to émise when empty.
	Status models.InvoiceStatus
}

// InvoiceLedger owns the invoices. Totals are frozen at generation time.
type InvoiceLedger struct {
	*Collection[models.Invoice]
	ids        IDSource
	permissive bool
}

// NewInvoiceLedger returns an empty ledger.
func NewInvoiceLedger(opts ...Option) *InvoiceLedger {
	o := buildOptions(opts)
	return &InvoiceLedger{
		Collection: NewCollection(models.Invoice.Clone),
		ids:        o.ids,
		permissive: o.permissive,
	}
}

// Add records an invoice under a FACT- identifier. The total is stored as
// given and never derived from the items.
func (l *InvoiceLedger) Add(d InvoiceDraft) models.Invoice {
	status := d.Status
	if status == "" {
		status = models.InvoiceStatusIssued
	}
	items := append([]models.InvoiceItem(nil), d.Items...)
	return l.Insert(func(taken func(string) bool) models.Invoice {
		return models.Invoice{
			ID:          freshID(l.ids, idgen.InvoicePrefix, taken),
			QuotationID: d.QuotationID,
			ClientID:    d.ClientID,
			Date:        d.Date,
			Items:       items,
			Total:       d.Total,
			Status:      status,
		}
	})
}

// GetByID returns the invoice with the given id.
func (l *InvoiceLedger) GetByID(id string) (models.Invoice, bool) {
	return l.Get(id)
}

// Update replaces the invoice with the same id as is. It returns false when
// the invoice does not exist.
func (l *InvoiceLedger) Update(inv models.Invoice) bool {
	return l.Replace(inv)
}

// Edit replaces the date, items and total of an invoice under the ledger
// lock. Origin and status are left as they are at that moment.
func (l *InvoiceLedger) Edit(id, date string, items []models.InvoiceItem, total float64) (models.Invoice, error) {
	items = append([]models.InvoiceItem(nil), items...)
	var out models.Invoice
	err := l.Modify(id, func(inv *models.Invoice) error {
		inv.Date = date
		inv.Items = items
		inv.Total = total
		out = inv.Clone()
		return nil
	})
	return out, err
}

// Delete removes the invoice. It returns false when it does not exist.
func (l *InvoiceLedger) Delete(id string) bool {
	return l.Remove(id)
}

// UpdateStatus changes only the status of an invoice.
func (l *InvoiceLedger) UpdateStatus(id string, status models.InvoiceStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", models.ErrInvalidStatus, status)
	}
	return l.Modify(id, func(inv *models.Invoice) error {
		if !l.permissive && !inv.Status.CanTransitionTo(status) {
			return fmt.Errorf("%w: %s -> %s", models.ErrInvalidTransition, inv.Status, status)
		}
		inv.Status = status
		return nil
	})
}

// ByQuotation returns the invoices generated from a quotation, oldest first.
func (l *InvoiceLedger) ByQuotation(quotationID string) []models.Invoice {
	var out []models.Invoice
	for _, inv := range l.List() {
		if inv.QuotationID == quotationID {
			out = append(out, inv)
		}
	}
	return out
}
