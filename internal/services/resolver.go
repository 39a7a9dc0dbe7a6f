package services

import (
	"github.com/diewo77/go-devis/internal/store"
)

// Labels shown for references whose target has been deleted.
const (
	UnknownClient   = "unknown client"
	UnknownMaterial = "unknown material"
)

// Resolver follows identifiers across stores. References are never
// embedded, so a deleted client or material simply fails to resolve.
type Resolver struct {
	stores *store.Stores
}

func NewResolver(s *store.Stores) *Resolver {
	return &Resolver{stores: s}
}

// ClientName returns the name of the client, or false when it is gone.
func (r *Resolver) ClientName(id string) (string, bool) {
	c, ok := r.stores.Clients.GetByID(id)
	if !ok {
		return "", false
	}
	return c.Name, true
}

// MaterialName returns the name of the material, or false when it is gone.
func (r *Resolver) MaterialName(id string) (string, bool) {
	m, ok := r.stores.Materials.GetByID(id)
	if !ok {
		return "", false
	}
	return m.Name, true
}

func (r *Resolver) ClientLabel(id string) string {
	if name, ok := r.ClientName(id); ok {
		return name
	}
	return UnknownClient
}

func (r *Resolver) MaterialLabel(id string) string {
	if name, ok := r.MaterialName(id); ok {
		return name
	}
	return UnknownMaterial
}
