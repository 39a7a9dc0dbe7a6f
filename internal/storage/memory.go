package storage

import (
	"context"
	"sync"
)

// MemoryAdapter keeps documents in process memory. It is meant for tests and
// for running without durability.
type MemoryAdapter struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{records: map[string][]byte{}}
}

func (m *MemoryAdapter) Load(_ context.Context, key string) ([]byte, bool, error) {
	if err := checkKey(key); err != nil {
		return nil, false, err
	}
	m.mu.RLock()
	data, ok := m.records[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

func (m *MemoryAdapter) Save(_ context.Context, key string, data []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	m.records[key] = append([]byte(nil), data...)
	m.mu.Unlock()
	return nil
}

func (m *MemoryAdapter) Close() error { return nil }

// Put seeds a document directly, bypassing Save.
func (m *MemoryAdapter) Put(key string, data []byte) {
	m.mu.Lock()
	m.records[key] = append([]byte(nil), data...)
	m.mu.Unlock()
}
