package repository

import (
	"context"
	"log/slog"

	"github.com/mousesolnat/saleplugin-sub000/internal/domain"
	"github.com/mousesolnat/saleplugin-sub000/internal/kvstore"
)

// Durable storage keys, one per repository or singleton.
const (
	KeyProducts  = "products"
	KeyPages     = "pages"
	KeyBlogPosts = "blog-posts"
	KeyCustomers = "users"
	KeyOrders    = "orders"
	KeyTickets   = "tickets"
	KeyCoupons   = "coupons"
	KeyWishlist  = "wishlist"
	KeyHistory   = "recently-viewed-history"
	KeySettings  = "settings"
	KeySession   = "current-session"
)

// Repositories aggregates every entity collection and the settings
// singleton, all backed by the same durable store.
type Repositories struct {
	Products  *Collection[domain.Product]
	Pages     *Collection[domain.Page]
	BlogPosts *Collection[domain.BlogPost]
	Customers *Collection[domain.Customer]
	Orders    *Collection[domain.Order]
	Tickets   *Collection[domain.SupportTicket]
	Coupons   *Collection[domain.Coupon]
	Wishlist  *Collection[domain.Product]
	History   *Collection[domain.Product]
	Settings  *Singleton[domain.StoreSettings]
}

// New loads (or seeds) every repository from the durable store.
func New(ctx context.Context, store kvstore.Store, logger *slog.Logger) *Repositories {
	return &Repositories{
		Products:  NewCollection(ctx, store, KeyProducts, SeedProducts(), logger),
		Pages:     NewCollection(ctx, store, KeyPages, SeedPages(), logger),
		BlogPosts: NewCollection(ctx, store, KeyBlogPosts, SeedBlogPosts(), logger),
		Customers: NewCollection[domain.Customer](ctx, store, KeyCustomers, nil, logger),
		Orders:    NewCollection[domain.Order](ctx, store, KeyOrders, nil, logger),
		Tickets:   NewCollection[domain.SupportTicket](ctx, store, KeyTickets, nil, logger),
		Coupons:   NewCollection[domain.Coupon](ctx, store, KeyCoupons, nil, logger),
		Wishlist:  NewCollection[domain.Product](ctx, store, KeyWishlist, nil, logger),
		History:   NewCollection[domain.Product](ctx, store, KeyHistory, nil, logger),
		Settings:  NewSingleton(ctx, store, KeySettings, domain.DefaultSettings(), domain.DecodeSettings, logger),
	}
}
