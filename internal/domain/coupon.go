package domain

import "time"

// Coupon type constants.
const (
	CouponTypePercentage = "percentage"
	CouponTypeFixed      = "fixed"
)

// Coupon represents a discount code issued by the back office.
type Coupon struct {
	ID        string     `json:"id"`
	Code      string     `json:"code"`
	Type      string     `json:"type"`
	Value     float64    `json:"value"`
	Active    bool       `json:"active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// EntityID returns the coupon's unique identifier.
func (c Coupon) EntityID() string { return c.ID }

// ValidCouponTypes returns the set of valid coupon types.
func ValidCouponTypes() []string {
	return []string{CouponTypePercentage, CouponTypeFixed}
}

// IsValidCouponType checks whether the given string is a valid coupon type.
func IsValidCouponType(t string) bool {
	for _, v := range ValidCouponTypes() {
		if v == t {
			return true
		}
	}
	return false
}

// IsUsable reports whether the coupon can be applied at the given time.
func (c Coupon) IsUsable(now time.Time) bool {
	if !c.Active {
		return false
	}
	if c.ExpiresAt != nil && now.After(*c.ExpiresAt) {
		return false
	}
	return true
}

// Discount computes the discount amount for the given subtotal,
// never exceeding the subtotal itself.
func (c Coupon) Discount(subtotal float64) float64 {
	var d float64
	switch c.Type {
	case CouponTypePercentage:
		d = subtotal * c.Value / 100
	case CouponTypeFixed:
		d = c.Value
	}
	if d > subtotal {
		d = subtotal
	}
	if d < 0 {
		d = 0
	}
	return Round2(d)
}
