package sender

import (
	"context"
	"strings"
	"sync"
)

type MemoryStore struct {
	mu   sync.RWMutex
	rows []Sender
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Create(_ context.Context, s *Sender) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, *s)
	return nil
}

func (m *MemoryStore) List(_ context.Context, f Filter) ([]Sender, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	dest := strings.ToLower(f.DestinationCity)
	out := []Sender{}
	for _, s := range m.rows {
		if dest != "" && !strings.Contains(strings.ToLower(s.DestinationCity), dest) {
			continue
		}
		if f.Status != "" && s.Status != f.Status {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}
