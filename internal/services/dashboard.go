package services

import (
	"time"

	"github.com/diewo77/go-devis/internal/models"
	"github.com/diewo77/go-devis/internal/store"
)

// Stats feeds the dashboard cards.
type Stats struct {
	Clients             int                          `json:"clients"`
	Materials           int                          `json:"materials"`
	Quotations          int                          `json:"quotations"`
	QuotationsThisMonth int                          `json:"quotations_this_month"`
	ValidatedThisMonth  int                          `json:"validated_this_month"`
	Invoices            int                          `json:"invoices"`
	InvoicesByStatus    map[models.InvoiceStatus]int `json:"invoices_by_status"`
	Revenue             float64                      `json:"revenue"`
}

type Dashboard struct {
	stores  *store.Stores
	billing *Billing
}

func NewDashboard(s *store.Stores, b *Billing) *Dashboard {
	return &Dashboard{stores: s, billing: b}
}

// Stats computes the figures for the month containing now. Quotations with
// an unparseable date count in the totals only.
func (d *Dashboard) Stats(now time.Time) Stats {
	st := Stats{
		Clients:          d.stores.Clients.Len(),
		Materials:        d.stores.Materials.Len(),
		InvoicesByStatus: map[models.InvoiceStatus]int{},
		Revenue:          d.billing.Revenue(),
	}
	for _, q := range d.stores.Quotations.List() {
		st.Quotations++
		day, ok := q.Day()
		if !ok || day.Year() != now.Year() || day.Month() != now.Month() {
			continue
		}
		st.QuotationsThisMonth++
		if q.IsValidated() {
			st.ValidatedThisMonth++
		}
	}
	for _, inv := range d.stores.Invoices.List() {
		st.Invoices++
		st.InvoicesByStatus[inv.Status]++
	}
	return st
}
