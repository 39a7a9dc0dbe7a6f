// Package validation checks form input before it reaches the stores. A
// Violations map holds one message code per offending field; codes are
// translated by the i18n package.
package validation

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/diewo77/go-devis/internal/models"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func NonNegativeFloat(field string, val float64, v Violations) {
	if val < 0 {
		v[field] = "must_not_be_negative"
	}
}

// Email accepts an empty value; use Required as well when the field is
// mandatory.
func Email(field, value string, v Violations) {
	if value == "" {
		return
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		v[field] = "invalid_email"
	}
}

// Date requires a YYYY-MM-DD calendar date.
func Date(field, value string, v Violations) {
	if _, err := time.Parse(models.DateLayout, value); err != nil {
		v[field] = "invalid_date"
	}
}

func ValidateClient(c models.Client) Violations {
	v := Violations{}
	Required("name", c.Name, v)
	Email("email", c.Email, v)
	return v
}

func ValidateMaterial(m models.Material) Violations {
	v := Violations{}
	Required("name", m.Name, v)
	Required("unit", m.Unit, v)
	NonNegativeFloat("price_per_unit", m.PricePerUnit, v)
	return v
}

// ValidateQuotationItems requires at least one item, each referencing a
// material known to materialExists.
func ValidateQuotationItems(items []models.QuotationItem, materialExists func(id string) bool, v Violations) {
	if len(items) == 0 {
		v["items"] = "at_least_one_item"
		return
	}
	for i, it := range items {
		prefix := fmt.Sprintf("items[%d].", i)
		switch {
		case strings.TrimSpace(it.MaterialID) == "":
			v[prefix+"material_id"] = "required"
		case !materialExists(it.MaterialID):
			v[prefix+"material_id"] = "unknown_material"
		}
		PositiveFloat(prefix+"quantity", it.Quantity, v)
		NonNegativeFloat(prefix+"price_per_unit", it.PricePerUnit, v)
	}
}

// ValidateInvoiceItems requires at least one line with a material, a
// positive quantity and a non-negative price. Materials are not looked up:
// an invoice may outlive the catalog entries it names.
func ValidateInvoiceItems(items []models.InvoiceItem, v Violations) {
	if len(items) == 0 {
		v["items"] = "at_least_one_item"
		return
	}
	for i, it := range items {
		prefix := fmt.Sprintf("items[%d].", i)
		Required(prefix+"material_id", it.MaterialID, v)
		PositiveFloat(prefix+"quantity", it.Quantity, v)
		NonNegativeFloat(prefix+"price_per_unit", it.PricePerUnit, v)
	}
}

// ValidateQuotation checks the quotation form: a known client, a date and
// valid items.
func ValidateQuotation(q models.Quotation, clientExists, materialExists func(id string) bool) Violations {
	v := Violations{}
	Required("client_id", q.ClientID, v)
	if _, bad := v["client_id"]; !bad && !clientExists(q.ClientID) {
		v["client_id"] = "unknown_client"
	}
	Date("date", q.Date, v)
	ValidateQuotationItems(q.Items, materialExists, v)
	return v
}
