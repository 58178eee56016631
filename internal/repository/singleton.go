package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/mousesolnat/saleplugin-sub000/internal/kvstore"
)

// Singleton owns a single mutable record (the store settings). Writes
// replace the whole value and persist immediately.
type Singleton[T any] struct {
	mu     sync.RWMutex
	key    string
	value  T
	store  kvstore.Store
	logger *slog.Logger
}

// NewSingleton loads the value from the durable store, decoding it with the
// provided function (which is expected to merge the payload over defaults).
// A missing or undecodable payload falls back to def.
func NewSingleton[T any](ctx context.Context, store kvstore.Store, key string, def T, decode func([]byte) (T, error), logger *slog.Logger) *Singleton[T] {
	s := &Singleton[T]{
		key:    key,
		value:  def,
		store:  store,
		logger: logger,
	}

	data, err := store.Load(ctx, key)
	if err != nil {
		return s
	}

	v, err := decode(data)
	if err != nil {
		logger.WarnContext(ctx, "discarding malformed stored value",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return s
	}

	s.value = v
	return s
}

// Get returns the current value.
func (s *Singleton[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Replace swaps the value wholesale and persists it.
func (s *Singleton[T]) Replace(ctx context.Context, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.value = v

	data, err := json.Marshal(v)
	if err != nil {
		s.logger.ErrorContext(ctx, "marshal singleton failed",
			slog.String("key", s.key),
			slog.String("error", err.Error()),
		)
		return
	}

	if err := s.store.Save(ctx, s.key, data); err != nil {
		s.logger.WarnContext(ctx, "persistence failed",
			slog.String("key", s.key),
			slog.String("error", err.Error()),
		)
	}
}
