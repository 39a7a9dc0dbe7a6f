// Package seed holds the collections a fresh installation starts with.
package seed

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/diewo77/go-devis/internal/models"
)

//go:embed data/*.json
var files embed.FS

// Data is the first-run content of every persisted store.
type Data struct {
	Clients    []models.Client
	Materials  []models.Material
	Quotations []models.Quotation
	Invoices   []models.Invoice
	Settings   models.Settings
}

// Empty returns empty collections and the default settings.
func Empty() Data {
	return Data{Settings: models.DefaultSettings()}
}

// Load returns the bundled dataset. Invoices always start empty.
func Load() (Data, error) {
	d := Empty()
	if err := read("data/clients.json", &d.Clients); err != nil {
		return Data{}, err
	}
	if err := read("data/materials.json", &d.Materials); err != nil {
		return Data{}, err
	}
	if err := read("data/quotations.json", &d.Quotations); err != nil {
		return Data{}, err
	}
	return d, nil
}

func read(name string, v any) error {
	raw, err := files.ReadFile(name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("seed %s: %w", name, err)
	}
	return nil
}
