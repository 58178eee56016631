package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/mousesolnat/saleplugin-sub000/internal/domain"
	"github.com/mousesolnat/saleplugin-sub000/internal/repository"
	apperrors "github.com/mousesolnat/saleplugin-sub000/pkg/errors"
	"github.com/mousesolnat/saleplugin-sub000/pkg/logger"
	"github.com/mousesolnat/saleplugin-sub000/pkg/validator"
)

// CheckoutInput is the buyer-supplied half of an order.
type CheckoutInput struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	CouponCode string `json:"coupon_code"`
	Currency   string `json:"currency"`
}

// CheckoutService converts the cart into a persisted order. Payment is a
// simulated success; digital delivery means there is nothing to ship.
type CheckoutService struct {
	orders  *repository.Collection[domain.Order]
	coupons *repository.Collection[domain.Coupon]
	cart    *CartService
}

// NewCheckoutService creates a checkout service.
func NewCheckoutService(orders *repository.Collection[domain.Order], coupons *repository.Collection[domain.Coupon], cart *CartService) *CheckoutService {
	return &CheckoutService{orders: orders, coupons: coupons, cart: cart}
}

// PlaceOrder validates the input, prices the cart in the base currency,
// applies an optional coupon, persists the order, and clears the cart.
// An unknown or expired coupon code fails the checkout rather than being
// silently ignored.
func (s *CheckoutService) PlaceOrder(ctx context.Context, in CheckoutInput) (domain.Order, error) {
	if err := validator.Validate(in); err != nil {
		return domain.Order{}, err
	}

	cart := s.cart.Cart()
	if len(cart.Items) == 0 {
		return domain.Order{}, apperrors.InvalidInput("cart is empty")
	}

	subtotal := cart.Total(1)

	var discount float64
	var couponCode string
	if in.CouponCode != "" {
		coupon, err := s.lookupCoupon(in.CouponCode)
		if err != nil {
			return domain.Order{}, err
		}
		discount = coupon.Discount(subtotal)
		couponCode = coupon.Code
	}

	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}

	order := domain.Order{
		ID:           domain.NewID("ord"),
		CustomerName: in.Name,
		Email:        in.Email,
		Date:         time.Now().UTC(),
		Status:       domain.OrderStatusCompleted,
		Subtotal:     subtotal,
		Discount:     discount,
		Total:        domain.Round2(subtotal - discount),
		CouponCode:   couponCode,
		Currency:     currency,
	}
	for _, item := range cart.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	if err := s.orders.Add(ctx, order); err != nil {
		return domain.Order{}, err
	}
	s.cart.Clear(ctx)

	logger.FromContext(ctx).InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.Float64("total", order.Total),
	)
	return order, nil
}

// OrdersFor returns the orders placed under the given email, newest first.
func (s *CheckoutService) OrdersFor(email string) []domain.Order {
	all := s.orders.All()
	matched := make([]domain.Order, 0)
	for _, o := range all {
		if o.Email == email {
			matched = append(matched, o)
		}
	}
	for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
		matched[i], matched[j] = matched[j], matched[i]
	}
	return matched
}

func (s *CheckoutService) lookupCoupon(code string) (domain.Coupon, error) {
	for _, c := range s.coupons.All() {
		if strings.EqualFold(c.Code, code) {
			if !c.IsUsable(time.Now().UTC()) {
				return domain.Coupon{}, apperrors.InvalidInput("coupon is inactive or expired")
			}
			return c, nil
		}
	}
	return domain.Coupon{}, apperrors.NotFound("coupon", code)
}
