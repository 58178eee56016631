package domain

import (
	"math"
	"time"
)

// Review status constants.
const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

// Review represents a customer review nested inside its owning product.
type Review struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customer_name"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidReviewStatuses returns the set of valid review statuses.
func ValidReviewStatuses() []string {
	return []string{ReviewStatusPending, ReviewStatusApproved, ReviewStatusRejected}
}

// IsValidReviewStatus checks whether the given string is a valid review status.
func IsValidReviewStatus(status string) bool {
	for _, s := range ValidReviewStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// Product represents a digital license offered in the catalog.
// Prices are stored in the base currency; currency conversion is applied
// only at display time and never persisted.
type Product struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Price          float64   `json:"price"`
	Category       string    `json:"category"`
	Description    string    `json:"description,omitempty"`
	Image          string    `json:"image,omitempty"`
	SEOTitle       string    `json:"seo_title,omitempty"`
	SEODescription string    `json:"seo_description,omitempty"`
	DemoURL        string    `json:"demo_url,omitempty"`
	Reviews        []Review  `json:"reviews,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// EntityID returns the product's unique identifier.
func (p Product) EntityID() string { return p.ID }

// DisplayPrice converts the base price with the given currency rate,
// rounded to 2 decimals.
func (p Product) DisplayPrice(rate float64) float64 {
	return Round2(p.Price * rate)
}

// ApprovedReviews returns only the reviews visible to the storefront.
func (p Product) ApprovedReviews() []Review {
	out := make([]Review, 0, len(p.Reviews))
	for _, r := range p.Reviews {
		if r.Status == ReviewStatusApproved {
			out = append(out, r)
		}
	}
	return out
}

// AverageRating returns the mean rating of approved reviews, 0 when none exist.
func (p Product) AverageRating() float64 {
	approved := p.ApprovedReviews()
	if len(approved) == 0 {
		return 0
	}
	var sum int
	for _, r := range approved {
		sum += r.Rating
	}
	return float64(sum) / float64(len(approved))
}

// Round2 rounds a monetary amount to 2 decimals for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
