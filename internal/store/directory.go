package store

import (
	"errors"
	"strconv"

	"github.com/diewo77/go-devis/internal/idgen"
	"github.com/diewo77/go-devis/internal/models"
)

// ErrNotFound is returned when an operation targets an unknown identifier.
var ErrNotFound = errors.New("not_found")

// Option configures a store.
type Option func(*options)

type options struct {
	ids        IDSource
	permissive bool
}

// WithIDs sets the identifier source used by Add.
func WithIDs(ids IDSource) Option {
	return func(o *options) { o.ids = ids }
}

// WithPermissiveStatus disables transition checks on UpdateStatus: any known
// status may replace any other, as the first releases of the tool allowed.
func WithPermissiveStatus() Option {
	return func(o *options) { o.permissive = true }
}

func buildOptions(opts []Option) options {
	o := options{ids: idgen.New()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Directory is the CRUD store shared by clients and materials.
type Directory[T Entity] struct {
	*Collection[T]
	ids    IDSource
	prefix string
	withID func(T, string) T
}

// ClientDirectory owns the client collection.
type ClientDirectory = Directory[models.Client]

// MaterialCatalog owns the material collection.
type MaterialCatalog = Directory[models.Material]

// NewClientDirectory returns an empty client directory.
func NewClientDirectory(opts ...Option) *ClientDirectory {
	o := buildOptions(opts)
	return &ClientDirectory{
		Collection: NewCollection[models.Client](nil),
		ids:        o.ids,
		withID: func(c models.Client, id string) models.Client {
			c.ID = id
			return c
		},
	}
}

// NewMaterialCatalog returns an empty material catalog.
func NewMaterialCatalog(opts ...Option) *MaterialCatalog {
	o := buildOptions(opts)
	return &MaterialCatalog{
		Collection: NewCollection[models.Material](nil),
		ids:        o.ids,
		withID: func(m models.Material, id string) models.Material {
			m.ID = id
			return m
		},
	}
}

// Add stores entity under a fresh identifier and returns it. Any identifier
// already set on entity is ignored.
func (d *Directory[T]) Add(entity T) T {
	return d.Insert(func(taken func(string) bool) T {
		return d.withID(entity, freshID(d.ids, d.prefix, taken))
	})
}

// GetByID returns the entity with the given id.
func (d *Directory[T]) GetByID(id string) (T, bool) {
	return d.Get(id)
}

// Update replaces the stored entity with the same id. It returns false when
// the entity does not exist; nothing is inserted in that case.
func (d *Directory[T]) Update(entity T) bool {
	return d.Replace(entity)
}

// Delete removes the entity. It returns false when it does not exist.
func (d *Directory[T]) Delete(id string) bool {
	return d.Remove(id)
}

// freshID draws identifiers until one is not taken. After a few collisions a
// counter is appended so a stuck source cannot loop forever.
func freshID(ids IDSource, prefix string, taken func(string) bool) string {
	for attempt := 0; ; attempt++ {
		id := ids.Generate(prefix)
		if attempt >= 8 {
			id += "-" + strconv.Itoa(attempt)
		}
		if !taken(id) {
			return id
		}
	}
}
