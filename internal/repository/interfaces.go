package repository

import (
	"context"
	"errors"

	"auction-live-api/internal/model"
)

// ErrItemNotFound is returned when no item carries the requested ID.
var ErrItemNotFound = errors.New("item not found")

// ItemStore is the authoritative holder of auction items. Every write replaces
// items through a transform so that no caller ever sees a half-applied update.
type ItemStore interface {
	// List returns a copy of all items in seed order.
	List(ctx context.Context) []model.Item

	// Get returns a copy of a single item.
	Get(ctx context.Context, id int) (model.Item, error)

	// Apply maps fn over every item and returns the resulting list.
	Apply(ctx context.Context, fn func(model.Item) model.Item) []model.Item

	// ApplyTo runs fn on one item. If fn fails the store is left untouched.
	ApplyTo(ctx context.Context, id int, fn func(model.Item) (model.Item, error)) (model.Item, error)
}
