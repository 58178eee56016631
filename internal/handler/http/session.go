package http

import (
	"log/slog"
	"net/http"

	"github.com/mousesolnat/saleplugin-sub000/internal/service"
	apperrors "github.com/mousesolnat/saleplugin-sub000/pkg/errors"
	"github.com/mousesolnat/saleplugin-sub000/pkg/httputil"
	"github.com/mousesolnat/saleplugin-sub000/pkg/validator"
)

// SessionHandler exposes customer registration, login, logout, and the
// profile view (orders and tickets for the logged-in customer).
type SessionHandler struct {
	session  *service.SessionService
	checkout *service.CheckoutService
	tickets  *service.TicketService
	logger   *slog.Logger
}

// NewSessionHandler creates a session handler.
func NewSessionHandler(session *service.SessionService, checkout *service.CheckoutService, tickets *service.TicketService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{session: session, checkout: checkout, tickets: tickets, logger: logger}
}

// RegisterRequest is the JSON body for creating an account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the JSON body for logging in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register handles POST /api/v1/auth/register
func (h *SessionHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	customer, err := h.session.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: customer})
}

// Login handles POST /api/v1/auth/login
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	customer, err := h.session.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: customer})
}

// Logout handles POST /api/v1/auth/logout
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.session.Logout(r.Context())
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "logged out"}})
}

// Me handles GET /api/v1/auth/me
func (h *SessionHandler) Me(w http.ResponseWriter, r *http.Request) {
	customer, ok := h.session.Current()
	if !ok {
		httputil.WriteError(w, r, apperrors.Unauthorized("not logged in"), h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: customer})
}

// Profile handles GET /api/v1/profile: the logged-in customer plus their
// order and ticket history.
func (h *SessionHandler) Profile(w http.ResponseWriter, r *http.Request) {
	customer, ok := h.session.Current()
	if !ok {
		httputil.WriteError(w, r, apperrors.Unauthorized("not logged in"), h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"customer": customer,
		"orders":   h.checkout.OrdersFor(customer.Email),
		"tickets":  h.tickets.For(customer.Email),
	}})
}
