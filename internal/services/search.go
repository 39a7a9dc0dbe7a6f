package services

import (
	"strings"

	"github.com/diewo77/go-devis/internal/models"
)

// DefaultPerPage is the page size used when none is given.
const DefaultPerPage = 10

// QuotationFilter narrows a quotation listing.
type QuotationFilter struct {
	// Term matches the client name or the quotation id, case-insensitively.
	Term string
	// OnlyValidated keeps validé and facturé quotations.
	OnlyValidated bool
	Status        models.QuotationStatus
	// Where is an optional QuotationRule expression.
	Where   string
	Page    int
	PerPage int
}

// Page is one page of a listing.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
}

// SearchQuotations filters the quotations in ledger order and returns the
// requested page. Out-of-range pages are clamped. Only a bad Where rule
// produces an error.
func (r *Resolver) SearchQuotations(f QuotationFilter) (Page[models.Quotation], error) {
	var rule *QuotationRule
	if f.Where != "" {
		var err error
		if rule, err = CompileQuotationRule(f.Where); err != nil {
			return Page[models.Quotation]{}, err
		}
	}
	term := strings.ToLower(strings.TrimSpace(f.Term))
	var matched []models.Quotation
	for _, q := range r.stores.Quotations.List() {
		if f.OnlyValidated && !q.IsValidated() {
			continue
		}
		if f.Status != "" && q.Status != f.Status {
			continue
		}
		if term != "" && !r.matches(q, term) {
			continue
		}
		if rule != nil {
			name, _ := r.ClientName(q.ClientID)
			ok, err := rule.Match(q, name)
			if err != nil {
				return Page[models.Quotation]{}, err
			}
			if !ok {
				continue
			}
		}
		matched = append(matched, q)
	}
	return Paginate(matched, f.Page, f.PerPage), nil
}

func (r *Resolver) matches(q models.Quotation, term string) bool {
	if strings.Contains(strings.ToLower(q.ID), term) {
		return true
	}
	name, ok := r.ClientName(q.ClientID)
	return ok && strings.Contains(strings.ToLower(name), term)
}

// Paginate cuts items into pages of perPage (DefaultPerPage when not
// positive) and returns page, counted from 1.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	pages := (len(items) + perPage - 1) / perPage
	if pages == 0 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	start := (page - 1) * perPage
	end := min(start+perPage, len(items))
	out := make([]T, 0, end-start)
	out = append(out, items[start:end]...)
	return Page[T]{Items: out, Total: len(items), Page: page, Pages: pages}
}
