package http

import (
	"log/slog"
	"net/http"

	"github.com/mousesolnat/saleplugin-sub000/internal/service"
	"github.com/mousesolnat/saleplugin-sub000/pkg/httputil"
	"github.com/mousesolnat/saleplugin-sub000/pkg/validator"
)

// CheckoutHandler turns carts into orders and files support tickets.
type CheckoutHandler struct {
	checkout *service.CheckoutService
	tickets  *service.TicketService
	logger   *slog.Logger
}

// NewCheckoutHandler creates a checkout handler.
func NewCheckoutHandler(checkout *service.CheckoutService, tickets *service.TicketService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, tickets: tickets, logger: logger}
}

// PlaceOrder handles POST /api/v1/checkout
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var in service.CheckoutInput
	if err := validator.DecodeAndValidate(r, &in); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	order, err := h.checkout.PlaceOrder(r.Context(), in)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: order})
}

// SubmitTicket handles POST /api/v1/tickets
func (h *CheckoutHandler) SubmitTicket(w http.ResponseWriter, r *http.Request) {
	var in service.TicketInput
	if err := validator.DecodeAndValidate(r, &in); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	ticket, err := h.tickets.Submit(r.Context(), in)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: ticket})
}
