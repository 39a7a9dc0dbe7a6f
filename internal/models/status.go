package models

import "errors"

var (
	// ErrInvalidStatus is returned when a status value is not part of its lifecycle.
	ErrInvalidStatus = errors.New("invalid_status")
	// ErrInvalidTransition is returned when a lifecycle forbids moving between two statuses.
	ErrInvalidTransition = errors.New("invalid_status_transition")
)

// QuotationStatus represents the lifecycle state of a quotation ("devis").
type QuotationStatus string

const (
	QuotationStatusDraft      QuotationStatus = "brouillon"
	QuotationStatusInProgress QuotationStatus = "en cours"
	QuotationStatusValidated  QuotationStatus = "validé"
	QuotationStatusInvoiced   QuotationStatus = "facturé"
)

// QuotationStatuses lists every quotation status in lifecycle order.
var QuotationStatuses = []QuotationStatus{
	QuotationStatusDraft,
	QuotationStatusInProgress,
	QuotationStatusValidated,
	QuotationStatusInvoiced,
}

var quotationTransitions = map[QuotationStatus][]QuotationStatus{
	QuotationStatusDraft:      {QuotationStatusInProgress, QuotationStatusValidated},
	QuotationStatusInProgress: {QuotationStatusDraft, QuotationStatusValidated},
	QuotationStatusValidated:  {QuotationStatusInProgress, QuotationStatusInvoiced},
	QuotationStatusInvoiced:   nil,
}

// Valid reports whether s is a known quotation status.
func (s QuotationStatus) Valid() bool {
	_, ok := quotationTransitions[s]
	return ok
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
// Staying on the same status is always allowed.
func (s QuotationStatus) CanTransitionTo(next QuotationStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	for _, allowed := range quotationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal returns true once a quotation has been invoiced.
func (s QuotationStatus) IsTerminal() bool {
	return s.Valid() && len(quotationTransitions[s]) == 0
}

// InvoiceStatus represents the payment state of an invoice ("facture").
type InvoiceStatus string

const (
	InvoiceStatusIssued        InvoiceStatus = "émise"
	InvoiceStatusPaid          InvoiceStatus = "payée"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partiellement payée"
	InvoiceStatusCancelled     InvoiceStatus = "annulée"
	InvoiceStatusOverdue       InvoiceStatus = "en retard"
)

// InvoiceStatuses lists every invoice status.
var InvoiceStatuses = []InvoiceStatus{
	InvoiceStatusIssued,
	InvoiceStatusPaid,
	InvoiceStatusPartiallyPaid,
	InvoiceStatusCancelled,
	InvoiceStatusOverdue,
}

var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceStatusIssued:        {InvoiceStatusPaid, InvoiceStatusPartiallyPaid, InvoiceStatusOverdue, InvoiceStatusCancelled},
	InvoiceStatusPartiallyPaid: {InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled},
	InvoiceStatusOverdue:       {InvoiceStatusPaid, InvoiceStatusPartiallyPaid, InvoiceStatusCancelled},
	InvoiceStatusPaid:          nil,
	InvoiceStatusCancelled:     nil,
}

// Valid reports whether s is a known invoice status.
func (s InvoiceStatus) Valid() bool {
	_, ok := invoiceTransitions[s]
	return ok
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	for _, allowed := range invoiceTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal returns true for paid and cancelled invoices.
func (s InvoiceStatus) IsTerminal() bool {
	return s.Valid() && len(invoiceTransitions[s]) == 0
}
