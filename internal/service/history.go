package service

import (
	"context"

	"github.com/mousesolnat/saleplugin-sub000/internal/domain"
	"github.com/mousesolnat/saleplugin-sub000/internal/event"
	"github.com/mousesolnat/saleplugin-sub000/internal/repository"
)

// HistoryLimit caps the recently-viewed list; the oldest entry is evicted
// when a fifth distinct product is viewed.
const HistoryLimit = 4

// HistoryService tracks recently viewed products, most recent first.
type HistoryService struct {
	history *repository.Collection[domain.Product]
	bus     *event.Bus
}

// NewHistoryService creates a history service over the persisted history
// collection.
func NewHistoryService(history *repository.Collection[domain.Product], bus *event.Bus) *HistoryService {
	return &HistoryService{history: history, bus: bus}
}

// Record moves the product to the front of the history, evicting the oldest
// entry beyond the limit. Re-viewing a product never grows the list.
func (s *HistoryService) Record(ctx context.Context, p domain.Product) {
	items := s.history.All()

	next := make([]domain.Product, 0, HistoryLimit)
	next = append(next, p)
	for _, item := range items {
		if item.ID == p.ID {
			continue
		}
		if len(next) == HistoryLimit {
			break
		}
		next = append(next, item)
	}

	s.history.Replace(ctx, next)
	s.bus.Publish(ctx, event.TopicProductViewed, p)
}

// Items returns the recently viewed products, most recent first.
func (s *HistoryService) Items() []domain.Product {
	return s.history.All()
}
