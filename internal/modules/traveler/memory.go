// README: In-memory traveler store for local runs without Postgres and for tests.
package traveler

import (
	"context"
	"strings"
	"sync"

	"courier/internal/types"
)

type MemoryStore struct {
	mu    sync.RWMutex
	order []types.ID
	byID  map[types.ID]*Traveler
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[types.ID]*Traveler)}
}

func (m *MemoryStore) Create(_ context.Context, t *Traveler) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	m.byID[t.ID] = &cp
	m.order = append(m.order, t.ID)
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id types.ID) (*Traveler, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *MemoryStore) List(_ context.Context, f Filter) ([]Traveler, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Traveler{}
	for _, id := range m.order {
		t := m.byID[id]
		if f.DestinationCity != "" && !containsFold(t.DestinationCity, f.DestinationCity) {
			continue
		}
		if f.CurrentLocation != "" && !containsFold(t.CurrentLocation, f.CurrentLocation) {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (m *MemoryStore) UpdateStatus(_ context.Context, id types.ID, from, to Status, version int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.byID[id]
	if !ok || t.Status != from || t.StatusVersion != version {
		return false, nil
	}
	t.Status = to
	t.StatusVersion++
	return true, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
