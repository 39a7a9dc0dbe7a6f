package models

// Client represents a customer of the business.
type Client struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

// EntityID returns the client identifier.
func (c Client) EntityID() string { return c.ID }

// Material is a catalog entry that quotation lines refer to.
type Material struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	PricePerUnit float64 `json:"price_per_unit"`
}

// EntityID returns the material identifier.
func (m Material) EntityID() string { return m.ID }
