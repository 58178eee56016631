package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mousesolnat/saleplugin-sub000/internal/service"
	"github.com/mousesolnat/saleplugin-sub000/pkg/httputil"
	"github.com/mousesolnat/saleplugin-sub000/pkg/validator"
)

// CartHandler exposes the cart and wishlist operations.
type CartHandler struct {
	cart     *service.CartService
	wishlist *service.WishlistService
	catalog  *service.CatalogService
	logger   *slog.Logger
}

// NewCartHandler creates a cart handler.
func NewCartHandler(cart *service.CartService, wishlist *service.WishlistService, catalog *service.CatalogService, logger *slog.Logger) *CartHandler {
	return &CartHandler{cart: cart, wishlist: wishlist, catalog: catalog, logger: logger}
}

// AddItemRequest is the JSON body for adding a product to the cart.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// AdjustQuantityRequest is the JSON body for changing a line's quantity.
type AdjustQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart := h.cart.Cart()
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"cart":       cart,
		"item_count": cart.ItemCount(),
		"total":      cart.Total(1),
	}})
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	p, err := h.catalog.GetProduct(req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	cart := h.cart.Add(r.Context(), p)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

// AdjustQuantity handles PATCH /api/v1/cart/items/{productId}
func (h *CartHandler) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	var req AdjustQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart, err := h.cart.AdjustQuantity(r.Context(), chi.URLParam(r, "productId"), req.Delta)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

// RemoveItem handles DELETE /api/v1/cart/items/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cart := h.cart.Remove(r.Context(), chi.URLParam(r, "productId"))
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear(r.Context())
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.cart.Cart()})
}

// GetWishlist handles GET /api/v1/wishlist
func (h *CartHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.wishlist.Items()})
}

// ToggleWishlist handles POST /api/v1/wishlist/{productId}
func (h *CartHandler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.GetProduct(chi.URLParam(r, "productId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	added := h.wishlist.Toggle(r.Context(), p)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"added": added,
		"items": h.wishlist.Items(),
	}})
}
