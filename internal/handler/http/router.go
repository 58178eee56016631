// Package http registers the storefront and back-office HTTP API.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mousesolnat/saleplugin-sub000/pkg/health"
	"github.com/mousesolnat/saleplugin-sub000/pkg/middleware"
)

// Handlers groups the handler set the router mounts.
type Handlers struct {
	Storefront *StorefrontHandler
	Cart       *CartHandler
	Session    *SessionHandler
	Checkout   *CheckoutHandler
	Navigation *NavigationHandler
	Admin      *AdminHandler
	Health     *health.Handler
	AdminGate  func(http.Handler) http.Handler
}

// NewRouter creates the chi router with all storefront routes registered.
func NewRouter(h Handlers, corsOrigins []string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	corsCfg := middleware.DefaultCORSConfig()
	if len(corsOrigins) > 0 {
		corsCfg.AllowedOrigins = corsOrigins
	}

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(corsCfg))
	r.Use(chimiddleware.Compress(5))
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))

	r.Get("/health/live", h.Health.LivenessHandler())
	r.Get("/health/ready", h.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		// Catalog and content
		r.Get("/products", h.Storefront.ListProducts)
		r.Get("/products/{id}", h.Storefront.GetProduct)
		r.Post("/products/{id}/reviews", h.Storefront.SubmitReview)
		r.Get("/pages", h.Storefront.ListPages)
		r.Get("/pages/{idOrSlug}", h.Storefront.GetPage)
		r.Get("/blog", h.Storefront.ListBlogPosts)
		r.Get("/blog/{idOrSlug}", h.Storefront.GetBlogPost)
		r.Get("/recently-viewed", h.Storefront.RecentlyViewed)
		r.Get("/settings", h.Storefront.GetSettings)

		// Cart and wishlist
		r.Get("/cart", h.Cart.GetCart)
		r.Delete("/cart", h.Cart.ClearCart)
		r.Post("/cart/items", h.Cart.AddItem)
		r.Patch("/cart/items/{productId}", h.Cart.AdjustQuantity)
		r.Delete("/cart/items/{productId}", h.Cart.RemoveItem)
		r.Get("/wishlist", h.Cart.GetWishlist)
		r.Post("/wishlist/{productId}", h.Cart.ToggleWishlist)

		// Session
		r.Post("/auth/register", h.Session.Register)
		r.Post("/auth/login", h.Session.Login)
		r.Post("/auth/logout", h.Session.Logout)
		r.Get("/auth/me", h.Session.Me)
		r.Get("/profile", h.Session.Profile)

		// Checkout and support
		r.Post("/checkout", h.Checkout.PlaceOrder)
		r.Post("/tickets", h.Checkout.SubmitTicket)

		// Navigation, head state, assistant
		r.Post("/navigate", h.Navigation.Navigate)
		r.Get("/view", h.Navigation.CurrentView)
		r.Get("/seo/head", h.Navigation.Head)
		r.Post("/assistant", h.Navigation.Ask)

		// Back-office
		r.Post("/admin/unlock", h.Admin.Unlock)
		r.Group(func(r chi.Router) {
			r.Use(h.AdminGate)

			r.Get("/admin/products", h.Admin.ListProducts)
			r.Post("/admin/products", h.Admin.CreateProduct)
			r.Put("/admin/products/{id}", h.Admin.UpdateProduct)
			r.Delete("/admin/products/{id}", h.Admin.DeleteProduct)
			r.Patch("/admin/products/{id}/reviews/{reviewId}", h.Admin.ModerateReview)
			r.Delete("/admin/products/{id}/reviews/{reviewId}", h.Admin.DeleteReview)
			r.Post("/admin/categories/rename", h.Admin.RenameCategory)

			r.Post("/admin/pages", h.Admin.CreatePage)
			r.Put("/admin/pages/{id}", h.Admin.UpdatePage)
			r.Delete("/admin/pages/{id}", h.Admin.DeletePage)

			r.Post("/admin/blog", h.Admin.CreateBlogPost)
			r.Put("/admin/blog/{id}", h.Admin.UpdateBlogPost)
			r.Delete("/admin/blog/{id}", h.Admin.DeleteBlogPost)

			r.Get("/admin/coupons", h.Admin.ListCoupons)
			r.Post("/admin/coupons", h.Admin.CreateCoupon)
			r.Delete("/admin/coupons/{id}", h.Admin.DeleteCoupon)

			r.Get("/admin/customers", h.Admin.ListCustomers)
			r.Delete("/admin/customers/{id}", h.Admin.DeleteCustomer)

			r.Get("/admin/orders", h.Admin.ListOrders)
			r.Get("/admin/orders/export", h.Admin.ExportOrders)
			r.Patch("/admin/orders/{id}/status", h.Admin.SetOrderStatus)

			r.Get("/admin/tickets", h.Admin.ListTickets)
			r.Patch("/admin/tickets/{id}", h.Admin.UpdateTicket)

			r.Put("/admin/settings", h.Admin.UpdateSettings)
		})
	})

	return r
}
