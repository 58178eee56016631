package domain

import "time"

// Customer represents a registered storefront customer.
// The password is stored as a bcrypt hash; the login contract (exact
// credential match required) is unchanged by the hashing.
type Customer struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash,omitempty"`
	JoinDate     time.Time `json:"join_date"`
	IsVerified   bool      `json:"is_verified,omitempty"`
}

// EntityID returns the customer's unique identifier.
func (c Customer) EntityID() string { return c.ID }

// Public returns a copy safe to hand to the presentation layer.
func (c Customer) Public() Customer {
	c.PasswordHash = ""
	return c
}
