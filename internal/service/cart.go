package service

import (
	"context"
	"sync"

	"github.com/mousesolnat/saleplugin-sub000/internal/domain"
	"github.com/mousesolnat/saleplugin-sub000/internal/event"
	apperrors "github.com/mousesolnat/saleplugin-sub000/pkg/errors"
)

// CartService holds the in-memory shopping cart. The cart is deliberately
// ephemeral: it starts empty on every server start and is never persisted.
type CartService struct {
	mu   sync.Mutex
	cart domain.Cart
	bus  *event.Bus
}

// NewCartService creates an empty cart.
func NewCartService(bus *event.Bus) *CartService {
	return &CartService{bus: bus}
}

// Add puts a product into the cart. Adding a product already in the cart
// increments its quantity by one instead of creating a duplicate line.
func (s *CartService) Add(ctx context.Context, p domain.Product) domain.Cart {
	s.mu.Lock()
	if i := s.cart.FindItemIndex(p.ID); i >= 0 {
		s.cart.Items[i].Quantity++
	} else {
		s.cart.Items = append(s.cart.Items, domain.CartItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Category:  p.Category,
			Image:     p.Image,
			Quantity:  1,
		})
	}
	snapshot := s.cart.Clone()
	s.mu.Unlock()

	s.bus.Publish(ctx, event.TopicCartUpdated, snapshot)
	return snapshot
}

// AdjustQuantity changes a line's quantity by delta, clamping at a minimum
// of one. Removal is a separate, explicit operation.
func (s *CartService) AdjustQuantity(ctx context.Context, productID string, delta int) (domain.Cart, error) {
	s.mu.Lock()
	i := s.cart.FindItemIndex(productID)
	if i < 0 {
		s.mu.Unlock()
		return domain.Cart{}, apperrors.NotFound("cart item", productID)
	}
	s.cart.Items[i].Quantity += delta
	if s.cart.Items[i].Quantity < 1 {
		s.cart.Items[i].Quantity = 1
	}
	snapshot := s.cart.Clone()
	s.mu.Unlock()

	s.bus.Publish(ctx, event.TopicCartUpdated, snapshot)
	return snapshot, nil
}

// Remove deletes a line from the cart regardless of its quantity.
func (s *CartService) Remove(ctx context.Context, productID string) domain.Cart {
	s.mu.Lock()
	if i := s.cart.FindItemIndex(productID); i >= 0 {
		s.cart.Items = append(s.cart.Items[:i], s.cart.Items[i+1:]...)
	}
	snapshot := s.cart.Clone()
	s.mu.Unlock()

	s.bus.Publish(ctx, event.TopicCartUpdated, snapshot)
	return snapshot
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context) {
	s.mu.Lock()
	s.cart = domain.Cart{}
	snapshot := s.cart.Clone()
	s.mu.Unlock()

	s.bus.Publish(ctx, event.TopicCartUpdated, snapshot)
}

// Cart returns a snapshot of the current cart.
func (s *CartService) Cart() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// Total returns the cart total converted at the given currency rate.
func (s *CartService) Total(rate float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total(rate)
}
