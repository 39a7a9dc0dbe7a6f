package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/diewo77/go-devis/internal/models"
)

func TestBasicValidators(t *testing.T) {
	v := Violations{}
	Required("name", "  ", v)
	PositiveFloat("quantity", 0, v)
	NonNegativeFloat("price", -1, v)
	Email("email", "not-an-email", v)
	Date("date", "15/01/2025", v)
	assert.Equal(t, Violations{
		"name":     "required",
		"quantity": "must_be_positive",
		"price":    "must_not_be_negative",
		"email":    "invalid_email",
		"date":     "invalid_date",
	}, v)

	ok := Violations{}
	Required("name", "Acme", ok)
	PositiveFloat("quantity", 1, ok)
	NonNegativeFloat("price", 0, ok)
	Email("email", "", ok)
	Email("email2", "contact@acme.fr", ok)
	Date("date", "2025-01-15", ok)
	assert.True(t, ok.Empty())
}

func TestEmailRejectsDisplayNames(t *testing.T) {
	v := Violations{}
	Email("email", "Acme <contact@acme.fr>", v)
	assert.Equal(t, "invalid_email", v["email"])
}

func TestValidateClient(t *testing.T) {
	assert.True(t, ValidateClient(models.Client{Name: "Acme", Email: "a@acme.fr"}).Empty())
	assert.Equal(t, Violations{"name": "required"}, ValidateClient(models.Client{}))
}

func TestValidateMaterial(t *testing.T) {
	assert.True(t, ValidateMaterial(models.Material{Name: "Cement", Unit: "bag", PricePerUnit: 25}).Empty())
	assert.Equal(t, Violations{
		"unit":           "required",
		"price_per_unit": "must_not_be_negative",
	}, ValidateMaterial(models.Material{Name: "Cement", PricePerUnit: -3}))
}

func TestValidateQuotation(t *testing.T) {
	known := func(ids ...string) func(string) bool {
		return func(id string) bool {
			for _, k := range ids {
				if k == id {
					return true
				}
			}
			return false
		}
	}
	clients, materials := known("c1"), known("m1")

	valid := models.Quotation{ClientID: "c1", Date: "2025-03-01", Items: []models.QuotationItem{{MaterialID: "m1", Quantity: 4, PricePerUnit: 25}}}
	assert.True(t, ValidateQuotation(valid, clients, materials).Empty())

	assert.Equal(t, Violations{
		"client_id": "required",
		"date":      "invalid_date",
		"items":     "at_least_one_item",
	}, ValidateQuotation(models.Quotation{}, clients, materials))

	bad := models.Quotation{ClientID: "c9", Date: "2025-03-01", Items: []models.QuotationItem{
		{MaterialID: "m1", Quantity: 1, PricePerUnit: 1},
		{MaterialID: "m9", Quantity: 0, PricePerUnit: -1},
		{Quantity: 1},
	}}
	assert.Equal(t, Violations{
		"client_id":               "unknown_client",
		"items[1].material_id":    "unknown_material",
		"items[1].quantity":       "must_be_positive",
		"items[1].price_per_unit": "must_not_be_negative",
		"items[2].material_id":    "required",
	}, ValidateQuotation(bad, clients, materials))
}

func TestValidateInvoiceItems(t *testing.T) {
	v := Violations{}
	ValidateInvoiceItems([]models.InvoiceItem{{MaterialID: "m1", Quantity: 2, PricePerUnit: 0}}, v)
	assert.True(t, v.Empty())

	v = Violations{}
	ValidateInvoiceItems(nil, v)
	assert.Equal(t, Violations{"items": "at_least_one_item"}, v)

	v = Violations{}
	ValidateInvoiceItems([]models.InvoiceItem{{Quantity: -1, PricePerUnit: -3}}, v)
	assert.Equal(t, Violations{
		"items[0].material_id":    "required",
		"items[0].quantity":       "must_be_positive",
		"items[0].price_per_unit": "must_not_be_negative",
	}, v)
}
