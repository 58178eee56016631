package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mousesolnat/saleplugin-sub000/internal/domain"
	"github.com/mousesolnat/saleplugin-sub000/internal/repository"
	"github.com/mousesolnat/saleplugin-sub000/internal/service"
	apperrors "github.com/mousesolnat/saleplugin-sub000/pkg/errors"
	"github.com/mousesolnat/saleplugin-sub000/pkg/httputil"
	"github.com/mousesolnat/saleplugin-sub000/pkg/pagination"
	"github.com/mousesolnat/saleplugin-sub000/pkg/validator"
)

// StorefrontHandler serves the public read side: catalog, pages, blog,
// settings, and recently viewed products.
type StorefrontHandler struct {
	catalog  *service.CatalogService
	history  *service.HistoryService
	pages    *repository.Collection[domain.Page]
	blog     *repository.Collection[domain.BlogPost]
	settings *repository.Singleton[domain.StoreSettings]
	logger   *slog.Logger
}

// NewStorefrontHandler creates the public storefront handler.
func NewStorefrontHandler(
	catalog *service.CatalogService,
	history *service.HistoryService,
	pages *repository.Collection[domain.Page],
	blog *repository.Collection[domain.BlogPost],
	settings *repository.Singleton[domain.StoreSettings],
	logger *slog.Logger,
) *StorefrontHandler {
	return &StorefrontHandler{
		catalog:  catalog,
		history:  history,
		pages:    pages,
		blog:     blog,
		settings: settings,
		logger:   logger,
	}
}

// publicProduct strips moderation state: only approved reviews leave the
// server, and prices are converted for the requested currency.
type publicProduct struct {
	domain.Product
	Reviews       []domain.Review `json:"reviews"`
	DisplayPrice  float64         `json:"display_price"`
	AverageRating float64         `json:"average_rating"`
}

func (h *StorefrontHandler) publicView(p domain.Product, rate float64) publicProduct {
	return publicProduct{
		Product:       p,
		Reviews:       p.ApprovedReviews(),
		DisplayPrice:  p.DisplayPrice(rate),
		AverageRating: p.AverageRating(),
	}
}

// currencyRate resolves the ?currency= query parameter against the
// configured rates, defaulting to the base currency.
func (h *StorefrontHandler) currencyRate(r *http.Request) float64 {
	code := r.URL.Query().Get("currency")
	if code == "" {
		return 1
	}
	if rate, ok := h.settings.Get().CurrencyRates[code]; ok && rate > 0 {
		return rate
	}
	return 1
}

// ListProducts handles GET /api/v1/products
func (h *StorefrontHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)
	page := h.catalog.Query(service.CatalogQuery{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
		Page:     params.Page,
		PerPage:  params.PerPage,
	})

	rate := h.currencyRate(r)
	products := make([]publicProduct, 0, len(page.Data))
	for _, p := range page.Data {
		products = append(products, h.publicView(p, rate))
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"products":    products,
		"facets":      page.Facets,
		"category":    page.Category,
		"search":      page.Search,
		"page":        page.Page,
		"per_page":    page.PerPage,
		"total_count": page.TotalCount,
		"total_pages": page.TotalPages,
	}})
}

// GetProduct handles GET /api/v1/products/{id}
func (h *StorefrontHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.catalog.GetProduct(id)
	if err != nil {
		p, err = h.catalog.GetBySlug(id)
	}
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.publicView(p, h.currencyRate(r))})
}

// SubmitReview handles POST /api/v1/products/{id}/reviews
func (h *StorefrontHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var in service.ReviewInput
	if err := validator.DecodeAndValidate(r, &in); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	review, err := h.catalog.SubmitReview(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: review})
}

// ListPages handles GET /api/v1/pages
func (h *StorefrontHandler) ListPages(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.pages.All()})
}

// GetPage handles GET /api/v1/pages/{idOrSlug}
func (h *StorefrontHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	idOrSlug := chi.URLParam(r, "idOrSlug")
	if p, ok := h.pages.Get(idOrSlug); ok {
		httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: p})
		return
	}
	for _, p := range h.pages.All() {
		if p.Slug == idOrSlug {
			httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: p})
			return
		}
	}
	httputil.WriteError(w, r, apperrors.NotFound("page", idOrSlug), h.logger)
}

// ListBlogPosts handles GET /api/v1/blog
func (h *StorefrontHandler) ListBlogPosts(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.blog.All()})
}

// GetBlogPost handles GET /api/v1/blog/{idOrSlug}
func (h *StorefrontHandler) GetBlogPost(w http.ResponseWriter, r *http.Request) {
	idOrSlug := chi.URLParam(r, "idOrSlug")
	if p, ok := h.blog.Get(idOrSlug); ok {
		httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: p})
		return
	}
	for _, p := range h.blog.All() {
		if p.Slug == idOrSlug {
			httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: p})
			return
		}
	}
	httputil.WriteError(w, r, apperrors.NotFound("blog post", idOrSlug), h.logger)
}

// RecentlyViewed handles GET /api/v1/recently-viewed
func (h *StorefrontHandler) RecentlyViewed(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.history.Items()})
}

// GetSettings handles GET /api/v1/settings; the admin password never leaves
// the server.
func (h *StorefrontHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings := h.settings.Get()
	settings.AdminPassword = ""
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: settings})
}
