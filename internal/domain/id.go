package domain

import "github.com/google/uuid"

// NewID generates a fresh type-prefixed entity identifier, e.g. "prod-1b9d6bcd-...".
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
