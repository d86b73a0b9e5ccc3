// README: In-memory order store with the same optimistic-concurrency contract as Store.
package order

import (
	"context"
	"sync"
	"time"

	"courier/internal/types"
)

type MemoryStore struct {
	mu     sync.RWMutex
	order  []types.ID
	byID   map[types.ID]*Order
	events []Event
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[types.ID]*Order)}
}

func (m *MemoryStore) Create(_ context.Context, o *Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *o
	m.byID[o.ID] = &cp
	m.order = append(m.order, o.ID)
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id types.ID) (*Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *MemoryStore) List(_ context.Context, f Filter) ([]Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Order{}
	for _, id := range m.order {
		o := m.byID[id]
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.DeliveryMethod != "" && o.DeliveryMethod != f.DeliveryMethod {
			continue
		}
		if f.BuyerID != "" && o.BuyerID != f.BuyerID {
			continue
		}
		out = append(out, *o)
	}
	return out, nil
}

func (m *MemoryStore) UpdateStatus(_ context.Context, id types.ID, from, to Status, version int, a *Assignment, reason *string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.byID[id]
	if !ok || o.Status != from || o.StatusVersion != version {
		return false, nil
	}
	o.Status = to
	o.StatusVersion++
	o.UpdatedAt = time.Now().UTC()
	if a != nil {
		o.DeliveryMethod = a.Method
		o.AssignedTravelerID = a.TravelerID
		o.AssignedPartnerID = a.PartnerID
	}
	if reason != nil {
		o.CancelReason = reason
	}
	return true, nil
}

func (m *MemoryStore) AppendEvent(_ context.Context, e *Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *e
	cp.ID = int64(len(m.events) + 1)
	m.events = append(m.events, cp)
	return nil
}

func (m *MemoryStore) Events(_ context.Context, id types.ID) ([]Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Event{}
	for _, e := range m.events {
		if e.OrderID == id {
			out = append(out, e)
		}
	}
	return out, nil
}
