// Package repository implements the entity repositories: in-memory ordered
// collections that load from the durable store on start (falling back to
// seed data) and re-serialize the whole collection after every mutation.
package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	apperrors "github.com/mousesolnat/saleplugin-sub000/pkg/errors"

	"github.com/mousesolnat/saleplugin-sub000/internal/kvstore"
)

// Entity is anything a Collection can own.
type Entity interface {
	EntityID() string
}

// Collection is an ordered, id-unique collection of one entity type with
// write-through persistence. Insertion order is preserved; there is no
// implicit sorting.
type Collection[T Entity] struct {
	mu     sync.RWMutex
	key    string
	items  []T
	store  kvstore.Store
	logger *slog.Logger
}

// NewCollection loads the collection from the durable store under the given
// key. A missing or malformed payload falls back to the seed data; the
// fallback is not written back until the next mutation.
func NewCollection[T Entity](ctx context.Context, store kvstore.Store, key string, seed []T, logger *slog.Logger) *Collection[T] {
	c := &Collection[T]{
		key:    key,
		store:  store,
		logger: logger,
	}

	data, err := store.Load(ctx, key)
	if err != nil {
		c.items = append([]T(nil), seed...)
		logger.DebugContext(ctx, "collection seeded with defaults",
			slog.String("key", key),
			slog.Int("count", len(c.items)),
		)
		return c
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		// Fail soft: a corrupt payload must never crash the storefront.
		c.items = append([]T(nil), seed...)
		logger.WarnContext(ctx, "discarding malformed stored collection",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return c
	}

	c.items = items
	return c
}

// All returns a snapshot copy of the collection. Callers must not rely on
// mutating the returned slice.
func (c *Collection[T]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]T(nil), c.items...)
}

// Get returns the entity with the given id.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, item := range c.items {
		if item.EntityID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Len returns the number of entities in the collection.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Add appends an entity. The id must be set and unique within the collection.
func (c *Collection[T]) Add(ctx context.Context, item T) error {
	id := item.EntityID()
	if id == "" {
		return apperrors.InvalidInput("entity id is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, existing := range c.items {
		if existing.EntityID() == id {
			return apperrors.AlreadyExists(c.key, "id", id)
		}
	}

	c.items = append(c.items, item)
	c.persist(ctx)
	return nil
}

// Update replaces the entity whose id matches. When no entity matches, it is
// a no-op: Update never inserts and never changes the collection length.
// The boolean reports whether a replacement happened.
func (c *Collection[T]) Update(ctx context.Context, item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].EntityID() == item.EntityID() {
			c.items[i] = item
			c.persist(ctx)
			return true
		}
	}
	return false
}

// Delete removes the entity with the given id. Deleting an absent id is a
// no-op, not an error.
func (c *Collection[T]) Delete(ctx context.Context, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].EntityID() == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.persist(ctx)
			return true
		}
	}
	return false
}

// Replace swaps the whole collection, for bulk rewrites such as the category
// rename cascade and LRU history reordering.
func (c *Collection[T]) Replace(ctx context.Context, items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = append([]T(nil), items...)
	c.persist(ctx)
}

// persist re-serializes the entire collection to the durable store. A failed
// write is a non-fatal "persistence failed" condition: the in-memory state
// remains authoritative for this run.
func (c *Collection[T]) persist(ctx context.Context) {
	data, err := json.Marshal(c.items)
	if err != nil {
		c.logger.ErrorContext(ctx, "marshal collection failed",
			slog.String("key", c.key),
			slog.String("error", err.Error()),
		)
		return
	}

	if err := c.store.Save(ctx, c.key, data); err != nil {
		c.logger.WarnContext(ctx, "persistence failed",
			slog.String("key", c.key),
			slog.String("error", err.Error()),
		)
	}
}
