// README: In-memory partner store.
package partner

import (
	"context"
	"strings"
	"sync"

	"courier/internal/types"
)

type MemoryStore struct {
	mu    sync.RWMutex
	order []types.ID
	byID  map[types.ID]*Partner
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[types.ID]*Partner)}
}

func (m *MemoryStore) Create(_ context.Context, p *Partner) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.byID[p.ID] = &cp
	m.order = append(m.order, p.ID)
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id types.ID) (*Partner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MemoryStore) List(_ context.Context, f Filter) ([]Partner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	city := strings.ToLower(f.City)
	out := []Partner{}
	for _, id := range m.order {
		p := m.byID[id]
		if city != "" &&
			!strings.Contains(strings.ToLower(p.City), city) &&
			!strings.Contains(strings.ToLower(p.PrimaryLocation), city) {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (m *MemoryStore) UpdateStatus(_ context.Context, id types.ID, from, to Status, version int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok || p.Status != from || p.StatusVersion != version {
		return false, nil
	}
	p.Status = to
	p.StatusVersion++
	return true, nil
}
