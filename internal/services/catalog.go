package services

import (
	"github.com/diewo77/go-devis/internal/models"
	"github.com/diewo77/go-devis/internal/store"
)

// ImportResult counts the outcome of a price list import.
type ImportResult struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
}

// ImportMaterials merges a price list into the catalog: a row whose id is
// known replaces that material, any other row is added under a fresh id.
func ImportMaterials(catalog *store.MaterialCatalog, materials []models.Material) ImportResult {
	var res ImportResult
	for _, m := range materials {
		if m.ID != "" && catalog.Update(m) {
			res.Updated++
			continue
		}
		catalog.Add(m)
		res.Added++
	}
	return res
}
