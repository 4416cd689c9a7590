package repository

import (
	"context"
	"fmt"
	"sync"

	"auction-live-api/internal/model"
)

// MemoryItemStore keeps the item list in process memory. A single mutex
// serializes every transform, so a tick and a bid never interleave.
type MemoryItemStore struct {
	mu    sync.RWMutex
	items []model.Item
}

// NewMemoryItemStore creates a store holding copies of seed.
func NewMemoryItemStore(seed []model.Item) *MemoryItemStore {
	return &MemoryItemStore{items: cloneItems(seed)}
}

// List returns a copy of all items in seed order.
func (s *MemoryItemStore) List(ctx context.Context) []model.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneItems(s.items)
}

// Get returns a copy of the item with the given ID.
func (s *MemoryItemStore) Get(ctx context.Context, id int) (model.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return model.Item{}, fmt.Errorf("item %d: %w", id, ErrItemNotFound)
	}
	return s.items[idx].Clone(), nil
}

// Apply maps fn over every item and replaces the whole list with the result.
func (s *MemoryItemStore) Apply(ctx context.Context, fn func(model.Item) model.Item) []model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]model.Item, len(s.items))
	for i, item := range s.items {
		next[i] = fn(item.Clone())
	}
	s.items = next

	return cloneItems(next)
}

// ApplyTo runs fn on a single item. The list is replaced only when fn succeeds.
func (s *MemoryItemStore) ApplyTo(ctx context.Context, id int, fn func(model.Item) (model.Item, error)) (model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return model.Item{}, fmt.Errorf("item %d: %w", id, ErrItemNotFound)
	}

	updated, err := fn(s.items[idx].Clone())
	if err != nil {
		return model.Item{}, err
	}

	next := make([]model.Item, len(s.items))
	copy(next, s.items)
	next[idx] = updated
	s.items = next

	return updated.Clone(), nil
}

// indexOf must be called with the lock held.
func (s *MemoryItemStore) indexOf(id int) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneItems(items []model.Item) []model.Item {
	out := make([]model.Item, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}
