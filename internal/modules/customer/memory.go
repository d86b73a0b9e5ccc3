package customer

import (
	"context"
	"sync"

	"courier/internal/types"
)

type MemoryStore struct {
	mu   sync.RWMutex
	rows []Customer
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Create(_ context.Context, c *Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, *c)
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id types.ID) (*Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.rows {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) List(_ context.Context, kind Kind) ([]Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Customer{}
	for _, c := range m.rows {
		if kind == "" || c.Kind == kind {
			out = append(out, c)
		}
	}
	return out, nil
}
