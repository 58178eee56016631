package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mousesolnat/saleplugin-sub000/internal/domain"
	"github.com/mousesolnat/saleplugin-sub000/internal/repository"
	"github.com/mousesolnat/saleplugin-sub000/internal/service"
	"github.com/mousesolnat/saleplugin-sub000/pkg/httputil"
	"github.com/mousesolnat/saleplugin-sub000/pkg/validator"
)

// AdminHandler serves the back-office API. Everything except Unlock sits
// behind the admin session middleware.
type AdminHandler struct {
	admin  *service.AdminService
	repos  *repository.Repositories
	logger *slog.Logger
}

// NewAdminHandler creates an admin handler.
func NewAdminHandler(admin *service.AdminService, repos *repository.Repositories, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, repos: repos, logger: logger}
}

// UnlockRequest is the JSON body for the admin password gate.
type UnlockRequest struct {
	Password string `json:"password" validate:"required"`
}

// ReviewStatusRequest is the JSON body for moderating a review.
type ReviewStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// OrderStatusRequest is the JSON body for an order lifecycle transition.
type OrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// RenameCategoryRequest is the JSON body for the category rename cascade.
type RenameCategoryRequest struct {
	From string `json:"from" validate:"required"`
	To   string `json:"to" validate:"required"`
}

// Unlock handles POST /api/v1/admin/unlock
func (h *AdminHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	var req UnlockRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	token, err := h.admin.Unlock(r.Context(), req.Password)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"token": token}})
}

// --- Products ---

// ListProducts handles GET /api/v1/admin/products; unlike the storefront
// listing it includes pending and rejected reviews.
func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.repos.Products.All()})
}

// CreateProduct handles POST /api/v1/admin/products
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in service.ProductInput
	if err := validator.DecodeAndValidate(r, &in); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	p, err := h.admin.CreateProduct(r.Context(), in)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: p})
}

// UpdateProduct handles PUT /api/v1/admin/products/{id}
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var in service.ProductInput
	if err := validator.DecodeAndValidate(r, &in); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	p, err := h.admin.UpdateProduct(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: p})
}

// DeleteProduct handles DELETE /api/v1/admin/products/{id}
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ModerateReview handles PATCH /api/v1/admin/products/{id}/reviews/{reviewId}
func (h *AdminHandler) ModerateReview(w http.ResponseWriter, r *http.Request) {
	var req ReviewStatusRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	p, err := h.admin.SetReviewStatus(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "reviewId"), req.Status)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: p})
}

// DeleteReview handles DELETE /api/v1/admin/products/{id}/reviews/{reviewId}
func (h *AdminHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	p, err := h.admin.DeleteReview(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "reviewId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: p})
}

// RenameCategory handles POST /api/v1/admin/categories/rename
func (h *AdminHandler) RenameCategory(w http.ResponseWriter, r *http.Request) {
	var req RenameCategoryRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.admin.RenameCategory(r.Context(), req.From, req.To); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"from": req.From, "to": req.To}})
}

// --- Pages ---

// CreatePage handles POST /api/v1/admin/pages
func (h *AdminHandler) CreatePage(w http.ResponseWriter, r *http.Request) {
	var in service.PageInput
	if err := validator.DecodeAndValidate(r, &in); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	p, err := h.admin.CreatePage(r.Context(), in)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: p})
}

// UpdatePage handles PUT /api/v1/admin/pages/{id}
func (h *AdminHandler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	var in service.PageInput
	if err := validator.DecodeAndValidate(r, &in); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	p, err := h.admin.UpdatePage(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: p})
}

// DeletePage handles DELETE /api/v1/admin/pages/{id}
func (h *AdminHandler) DeletePage(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.DeletePage(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Blog ---

// CreateBlogPost handles POST /api/v1/admin/blog
func (h *AdminHandler) CreateBlogPost(w http.ResponseWriter, r *http.Request) {
	var in service.BlogPostInput
	if err := validator.DecodeAndValidate(r, &in); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	p, err := h.admin.CreateBlogPost(r.Context(), in)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: p})
}

// UpdateBlogPost handles PUT /api/v1/admin/blog/{id}
func (h *AdminHandler) UpdateBlogPost(w http.ResponseWriter, r *http.Request) {
	var in service.BlogPostInput
	if err := validator.DecodeAndValidate(r, &in); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	p, err := h.admin.UpdateBlogPost(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: p})
}

// DeleteBlogPost handles DELETE /api/v1/admin/blog/{id}
func (h *AdminHandler) DeleteBlogPost(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.DeleteBlogPost(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Coupons ---

// ListCoupons handles GET /api/v1/admin/coupons
func (h *AdminHandler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.repos.Coupons.All()})
}

// CreateCoupon handles POST /api/v1/admin/coupons
func (h *AdminHandler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	var in service.CouponInput
	if err := validator.DecodeAndValidate(r, &in); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	c, err := h.admin.CreateCoupon(r.Context(), in)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: c})
}

// DeleteCoupon handles DELETE /api/v1/admin/coupons/{id}
func (h *AdminHandler) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.DeleteCoupon(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Customers ---

// ListCustomers handles GET /api/v1/admin/customers; password hashes stay
// server-side.
func (h *AdminHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers := h.repos.Customers.All()
	public := make([]domain.Customer, 0, len(customers))
	for _, c := range customers {
		public = append(public, c.Public())
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: public})
}

// DeleteCustomer handles DELETE /api/v1/admin/customers/{id}
func (h *AdminHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.DeleteCustomer(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Orders ---

// ListOrders handles GET /api/v1/admin/orders
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.repos.Orders.All()})
}

// SetOrderStatus handles PATCH /api/v1/admin/orders/{id}/status
func (h *AdminHandler) SetOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req OrderStatusRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	order, err := h.admin.SetOrderStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}

// ExportOrders handles GET /api/v1/admin/orders/export
func (h *AdminHandler) ExportOrders(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="orders.csv"`)
	_, _ = w.Write([]byte(h.admin.ExportOrdersCSV()))
}

// --- Tickets ---

// ListTickets handles GET /api/v1/admin/tickets
func (h *AdminHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.repos.Tickets.All()})
}

// UpdateTicket handles PATCH /api/v1/admin/tickets/{id}
func (h *AdminHandler) UpdateTicket(w http.ResponseWriter, r *http.Request) {
	var in service.TicketUpdateInput
	if err := validator.DecodeAndValidate(r, &in); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	ticket, err := h.admin.UpdateTicket(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: ticket})
}

// --- Settings ---

// UpdateSettings handles PUT /api/v1/admin/settings
func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings domain.StoreSettings
	if err := validator.DecodeAndValidate(r, &settings); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	updated := h.admin.UpdateSettings(r.Context(), settings)
	updated.AdminPassword = ""
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: updated})
}
