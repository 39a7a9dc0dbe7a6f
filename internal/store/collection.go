// Package store holds the in-memory state of the quoting tool: the client
// directory, the material catalog, the quotation and invoice ledgers and the
// application settings.
//
// Stores know nothing about persistence. Every mutation notifies subscribers
// with a full snapshot of the collection after the change has been applied;
// the persist package subscribes to write those snapshots to a storage adapter.
package store

import (
	"sync"
)

// Entity is anything a Collection can index by identifier.
type Entity interface {
	EntityID() string
}

// IDSource generates identifiers for new entities.
type IDSource interface {
	Generate(prefix string) string
}

// Collection is an ordered, id-indexed list of entities safe for concurrent use.
// Reads return copies; callers never share memory with the collection.
type Collection[T Entity] struct {
	mu        sync.RWMutex
	items     []T
	index     map[string]int
	clone     func(T) T
	listeners []func([]T)
}

// NewCollection returns an empty collection. clone deep-copies an entity and
// may be nil for plain value types.
func NewCollection[T Entity](clone func(T) T) *Collection[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &Collection[T]{index: map[string]int{}, clone: clone}
}

// Subscribe registers fn to receive a snapshot after every mutation.
// fn must not modify the snapshot.
func (c *Collection[T]) Subscribe(fn func([]T)) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// Restore replaces the whole collection without notifying subscribers.
// Entities with duplicate identifiers keep their first occurrence.
func (c *Collection[T]) Restore(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make([]T, 0, len(items))
	c.index = make(map[string]int, len(items))
	for _, item := range items {
		id := item.EntityID()
		if _, dup := c.index[id]; dup {
			continue
		}
		c.index[id] = len(c.items)
		c.items = append(c.items, c.clone(item))
	}
}

// List returns a copy of the collection in insertion order.
func (c *Collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

// Len returns the number of entities.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Get returns the entity with the given id.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return c.clone(c.items[i]), true
}

// Has reports whether an entity with the given id exists.
func (c *Collection[T]) Has(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.index[id]
	return ok
}

// Insert appends an entity built by create. create receives a unique-id check
// so the caller can draw a fresh identifier on collision.
func (c *Collection[T]) Insert(create func(taken func(id string) bool) T) T {
	c.mu.Lock()
	item := create(func(id string) bool {
		_, ok := c.index[id]
		return ok
	})
	c.index[item.EntityID()] = len(c.items)
	c.items = append(c.items, c.clone(item))
	c.notifyLocked()
	c.mu.Unlock()
	return c.clone(item)
}

// Replace swaps the entity sharing item's id. It returns false, and inserts
// nothing, when no such entity exists.
func (c *Collection[T]) Replace(item T) bool {
	return c.Modify(item.EntityID(), func(current *T) error {
		*current = item
		return nil
	}) == nil
}

// Modify applies fn to the entity with the given id under the write lock.
// It returns ErrNotFound when the entity is absent; an error from fn aborts
// the change and is returned as is.
func (c *Collection[T]) Modify(id string, fn func(current *T) error) error {
	c.mu.Lock()
	i, ok := c.index[id]
	if !ok {
		c.mu.Unlock()
		return ErrNotFound
	}
	next := c.clone(c.items[i])
	if err := fn(&next); err != nil {
		c.mu.Unlock()
		return err
	}
	c.items[i] = c.clone(next)
	c.notifyLocked()
	c.mu.Unlock()
	return nil
}

// Remove deletes the entity with the given id, preserving the order of the
// remaining ones. It returns false when the entity is absent.
func (c *Collection[T]) Remove(id string) bool {
	c.mu.Lock()
	i, ok := c.index[id]
	if !ok {
		c.mu.Unlock()
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	delete(c.index, id)
	for j := i; j < len(c.items); j++ {
		c.index[c.items[j].EntityID()] = j
	}
	c.notifyLocked()
	c.mu.Unlock()
	return true
}

func (c *Collection[T]) snapshotLocked() []T {
	out := make([]T, len(c.items))
	for i, item := range c.items {
		out[i] = c.clone(item)
	}
	return out
}

// notifyLocked runs while the write lock is held so subscribers observe
// snapshots in mutation order. Subscribers must not call back into c.
func (c *Collection[T]) notifyLocked() {
	if len(c.listeners) == 0 {
		return
	}
	snap := c.snapshotLocked()
	for _, fn := range c.listeners {
		fn(snap)
	}
}
