package store

import (
	"fmt"

	"github.com/diewo77/go-devis/internal/models"
)

// QuotationLedger owns the quotations. Totals are always derived from items.
type QuotationLedger struct {
	*Collection[models.Quotation]
	ids        IDSource
	permissive bool
}

// NewQuotationLedger returns an empty ledger.
func NewQuotationLedger(opts ...Option) *QuotationLedger {
	o := buildOptions(opts)
	return &QuotationLedger{
		Collection: NewCollection(models.Quotation.Clone),
		ids:        o.ids,
		permissive: o.permissive,
	}
}

// CalculateTotal returns the sum of quantity * price_per_unit over items.
func (l *QuotationLedger) CalculateTotal(items []models.QuotationItem) float64 {
	return models.SumItems(items)
}

// Add records a new draft quotation. Items are not validated here; callers
// validate forms before calling Add.
func (l *QuotationLedger) Add(clientID, date string, items []models.QuotationItem) models.Quotation {
	items = append([]models.QuotationItem(nil), items...)
	return l.Insert(func(taken func(string) bool) models.Quotation {
		return models.Quotation{
			ID:       freshID(l.ids, "", taken),
			ClientID: clientID,
			Date:     date,
			Items:    items,
			Total:    l.CalculateTotal(items),
			Status:   models.QuotationStatusDraft,
		}
	})
}

// GetByID returns the quotation with the given id.
func (l *QuotationLedger) GetByID(id string) (models.Quotation, bool) {
	return l.Get(id)
}

// Update replaces the quotation with the same id, recomputing its total from
// the given items. The status is stored as given. It returns false when the
// quotation does not exist.
func (l *QuotationLedger) Update(q models.Quotation) bool {
	q.Total = l.CalculateTotal(q.Items)
	return l.Replace(q)
}

// Edit replaces the client, date and items of a quotation under the ledger
// lock, recomputing the total. The status is left as it is at that moment.
func (l *QuotationLedger) Edit(id, clientID, date string, items []models.QuotationItem) (models.Quotation, error) {
	items = append([]models.QuotationItem(nil), items...)
	var out models.Quotation
	err := l.Modify(id, func(q *models.Quotation) error {
		q.ClientID = clientID
		q.Date = date
		q.Items = items
		q.Total = l.CalculateTotal(items)
		out = q.Clone()
		return nil
	})
	return out, err
}

// Restore replaces the quotations without notifying subscribers. Totals are
// recomputed from the items.
func (l *QuotationLedger) Restore(quotations []models.Quotation) {
	fixed := make([]models.Quotation, len(quotations))
	for i, q := range quotations {
		q.Total = l.CalculateTotal(q.Items)
		fixed[i] = q
	}
	l.Collection.Restore(fixed)
}

// Delete removes the quotation. It returns false when it does not exist.
func (l *QuotationLedger) Delete(id string) bool {
	return l.Remove(id)
}

// UpdateStatus changes only the status of a quotation.
func (l *QuotationLedger) UpdateStatus(id string, status models.QuotationStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", models.ErrInvalidStatus, status)
	}
	return l.Modify(id, func(q *models.Quotation) error {
		if !l.permissive && !q.Status.CanTransitionTo(status) {
			return fmt.Errorf("%w: %s -> %s", models.ErrInvalidTransition, q.Status, status)
		}
		q.Status = status
		return nil
	})
}
