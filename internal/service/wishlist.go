package service

import (
	"context"

	"github.com/mousesolnat/saleplugin-sub000/internal/domain"
	"github.com/mousesolnat/saleplugin-sub000/internal/repository"
)

// WishlistService manages the persisted wishlist. Products are stored as
// full snapshots in insertion order.
type WishlistService struct {
	wishlist *repository.Collection[domain.Product]
}

// NewWishlistService creates a wishlist service over the wishlist collection.
func NewWishlistService(wishlist *repository.Collection[domain.Product]) *WishlistService {
	return &WishlistService{wishlist: wishlist}
}

// Toggle adds the product if absent and removes it if present, returning
// true when the product ended up on the wishlist. The relative order of the
// remaining entries never changes.
func (s *WishlistService) Toggle(ctx context.Context, p domain.Product) bool {
	if s.wishlist.Delete(ctx, p.ID) {
		return false
	}
	// Add only fails on a duplicate id, which Delete just ruled out.
	_ = s.wishlist.Add(ctx, p)
	return true
}

// Contains reports whether the product is on the wishlist.
func (s *WishlistService) Contains(productID string) bool {
	_, ok := s.wishlist.Get(productID)
	return ok
}

// Items returns the wishlist in insertion order.
func (s *WishlistService) Items() []domain.Product {
	return s.wishlist.All()
}
