// Package view implements the storefront view state machine. The current
// view is explicit server-side state: navigation is an operation that can be
// rejected, not a free string.
package view

import (
	"context"
	"sync"

	"github.com/mousesolnat/saleplugin-sub000/internal/domain"
	"github.com/mousesolnat/saleplugin-sub000/internal/event"
	"github.com/mousesolnat/saleplugin-sub000/internal/repository"
	"github.com/mousesolnat/saleplugin-sub000/internal/service"
	apperrors "github.com/mousesolnat/saleplugin-sub000/pkg/errors"
)

// Name identifies a storefront view.
type Name string

// Storefront views.
const (
	Home     Name = "home"
	Shop     Name = "shop"
	Contact  Name = "contact"
	Product  Name = "product"
	Page     Name = "page"
	Wishlist Name = "wishlist"
	Profile  Name = "profile"
	Checkout Name = "checkout"
)

// View is the resolved navigation state. Product and Page carry entity
// snapshots only for their respective views.
type View struct {
	Name    Name            `json:"name"`
	Product *domain.Product `json:"product,omitempty"`
	Page    *domain.Page    `json:"page,omitempty"`
}

// Target is a navigation request: a view name plus the entity id the
// product and page views require.
type Target struct {
	Name Name   `json:"name"`
	ID   string `json:"id,omitempty"`
}

// Router validates navigation targets, tracks the current view, and
// announces every successful transition on the bus.
type Router struct {
	mu      sync.RWMutex
	current View

	catalog *service.CatalogService
	history *service.HistoryService
	pages   *repository.Collection[domain.Page]
	bus     *event.Bus
}

// NewRouter creates a router starting at the home view. Logging out resets
// the storefront to home so a gated view never outlives its session.
func NewRouter(catalog *service.CatalogService, history *service.HistoryService, pages *repository.Collection[domain.Page], bus *event.Bus) *Router {
	r := &Router{
		current: View{Name: Home},
		catalog: catalog,
		history: history,
		pages:   pages,
		bus:     bus,
	}
	bus.Subscribe(event.TopicSessionLoggedOut, func(ctx context.Context, _ any) {
		r.reset(ctx)
	})
	return r
}

func (r *Router) reset(ctx context.Context) {
	home := View{Name: Home}
	r.mu.Lock()
	changed := r.current.Name != Home
	r.current = home
	r.mu.Unlock()
	if changed {
		r.bus.Publish(ctx, event.TopicViewChanged, home)
	}
}

// Navigate moves to the target view. Product and page targets must name an
// existing entity; a rejected navigation leaves the current view unchanged.
// Landing on a product records it as recently viewed.
func (r *Router) Navigate(ctx context.Context, target Target) (View, error) {
	next := View{Name: target.Name}

	switch target.Name {
	case Home, Shop, Contact, Wishlist, Profile, Checkout:
		// No entity to resolve.
	case Product:
		p, err := r.catalog.GetProduct(target.ID)
		if err != nil {
			return r.Current(), err
		}
		next.Product = &p
		r.history.Record(ctx, p)
	case Page:
		p, ok := r.pages.Get(target.ID)
		if !ok {
			return r.Current(), apperrors.NotFound("page", target.ID)
		}
		next.Page = &p
	default:
		return r.Current(), apperrors.InvalidInput("unknown view: " + string(target.Name))
	}

	r.mu.Lock()
	r.current = next
	r.mu.Unlock()

	r.bus.Publish(ctx, event.TopicViewChanged, next)
	return next, nil
}

// Current returns the view the storefront is on.
func (r *Router) Current() View {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}
