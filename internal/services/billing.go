package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/diewo77/go-devis/internal/models"
	"github.com/diewo77/go-devis/internal/store"
)

// ErrQuotationNotValidated is returned when an invoice is requested for a
// quotation that is not validé.
var ErrQuotationNotValidated = errors.New("quotation_not_validated")

type quotationLedger interface {
	GetByID(id string) (models.Quotation, bool)
	UpdateStatus(id string, status models.QuotationStatus) error
}

// Notifier is told about invoice events. Implementations must not block
// for long.
type Notifier interface {
	InvoiceGenerated(ctx context.Context, inv models.Invoice, client string)
	InvoiceStatusChanged(ctx context.Context, inv models.Invoice)
}

// Billing turns validated quotations into invoices.
type Billing struct {
	quotations quotationLedger
	invoices   *store.InvoiceLedger
	names      *Resolver
	notifier   Notifier
	log        *slog.Logger
	now        func() time.Time

	// generation is serialized so one quotation cannot be invoiced twice.
	mu sync.Mutex
}

func NewBilling(s *store.Stores, log *slog.Logger) *Billing {
	return &Billing{
		quotations: s.Quotations,
		invoices:   s.Invoices,
		names:      NewResolver(s),
		log:        log,
		now:        time.Now,
	}
}

// SetNotifier registers n for invoice events.
func (b *Billing) SetNotifier(n Notifier) {
	b.notifier = n
}

// GenerateInvoice records an émise invoice copying the quotation's items and
// freezing its total, then marks the quotation facturé. If the quotation
// cannot be marked, the invoice is removed again and the error returned.
// An empty date means today.
func (b *Billing) GenerateInvoice(ctx context.Context, quotationID, date string) (models.Invoice, error) {
	inv, err := b.generate(ctx, quotationID, date)
	if err != nil {
		return models.Invoice{}, err
	}
	if b.notifier != nil {
		b.notifier.InvoiceGenerated(ctx, inv, b.names.ClientLabel(inv.ClientID))
	}
	return inv, nil
}

func (b *Billing) generate(ctx context.Context, quotationID, date string) (models.Invoice, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	q, ok := b.quotations.GetByID(quotationID)
	if !ok {
		return models.Invoice{}, fmt.Errorf("quotation %s: %w", quotationID, store.ErrNotFound)
	}
	if !q.CanInvoice() {
		return models.Invoice{}, fmt.Errorf("quotation %s is %s: %w", q.ID, q.Status, ErrQuotationNotValidated)
	}
	if date == "" {
		date = b.now().Format(models.DateLayout)
	}

	inv := b.invoices.Add(store.InvoiceDraft{
		QuotationID: q.ID,
		ClientID:    q.ClientID,
		Date:        date,
		Items:       models.InvoiceItemsFrom(q.Items),
		Total:       q.Total,
		Status:      models.InvoiceStatusIssued,
	})
	if err := b.quotations.UpdateStatus(q.ID, models.QuotationStatusInvoiced); err != nil {
		b.invoices.Delete(inv.ID)
		b.log.WarnContext(ctx, "invoice rolled back", "quotation_id", q.ID, "invoice_id", inv.ID, "error", err)
		return models.Invoice{}, fmt.Errorf("mark quotation %s invoiced: %w", q.ID, err)
	}
	b.log.InfoContext(ctx, "invoice generated", "quotation_id", q.ID, "invoice_id", inv.ID, "total", inv.Total)
	return inv, nil
}

// UpdateInvoiceStatus changes the status of an invoice and notifies.
func (b *Billing) UpdateInvoiceStatus(ctx context.Context, id string, status models.InvoiceStatus) (models.Invoice, error) {
	if err := b.invoices.UpdateStatus(id, status); err != nil {
		return models.Invoice{}, err
	}
	inv, ok := b.invoices.GetByID(id)
	if !ok {
		return models.Invoice{}, fmt.Errorf("invoice %s: %w", id, store.ErrNotFound)
	}
	if b.notifier != nil {
		b.notifier.InvoiceStatusChanged(ctx, inv)
	}
	return inv, nil
}

// Revenue sums the totals of paid invoices.
func (b *Billing) Revenue() float64 {
	sum := decimal.Zero
	for _, inv := range b.invoices.List() {
		if inv.IsPaid() {
			sum = sum.Add(decimal.NewFromFloat(inv.Total))
		}
	}
	return sum.InexactFloat64()
}
