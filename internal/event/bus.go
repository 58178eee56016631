// Package event provides the in-process publish/subscribe bus that connects
// state mutations to their one-way consumers (the SEO synchronizer, the view
// router's session reset, the cart "surface me" signal). Delivery is
// synchronous and in subscription order, so a mutation happens-before every
// dependent recompute.
package event

import (
	"context"
	"log/slog"
	"sync"
)

// Topic identifies a class of state-change events.
type Topic string

// Topics published by the storefront.
const (
	TopicViewChanged      Topic = "view.changed"
	TopicSettingsUpdated  Topic = "settings.updated"
	TopicCartUpdated      Topic = "cart.updated"
	TopicProductViewed    Topic = "product.viewed"
	TopicSessionLoggedIn  Topic = "session.logged_in"
	TopicSessionLoggedOut Topic = "session.logged_out"
)

// Handler consumes a published event payload.
type Handler func(ctx context.Context, payload any)

// Bus is a synchronous in-process event bus.
type Bus struct {
	mu     sync.RWMutex
	subs   map[Topic][]Handler
	logger *slog.Logger
}

// NewBus creates an empty bus.
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		subs:   make(map[Topic][]Handler),
		logger: logger,
	}
}

// Subscribe registers a handler for a topic. Handlers run synchronously in
// registration order on the publisher's goroutine.
func (b *Bus) Subscribe(topic Topic, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[topic] = append(b.subs[topic], h)
}

// Publish delivers the payload to every subscriber of the topic. A panicking
// subscriber is logged and skipped; it must not take the storefront down.
func (b *Bus) Publish(ctx context.Context, topic Topic, payload any) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.subs[topic]))
	copy(handlers, b.subs[topic])
	b.mu.RUnlock()

	for _, h := range handlers {
		b.invoke(ctx, topic, h, payload)
	}
}

func (b *Bus) invoke(ctx context.Context, topic Topic, h Handler, payload any) {
	defer func() {
		if rec := recover(); rec != nil {
			b.logger.ErrorContext(ctx, "event subscriber panicked",
				slog.String("topic", string(topic)),
				slog.Any("panic", rec),
			)
		}
	}()
	h(ctx, payload)
}
