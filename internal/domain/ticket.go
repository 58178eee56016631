package domain

import "time"

// Support ticket status constants.
const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in-progress"
	TicketStatusClosed     = "closed"
)

// SupportTicket represents a customer support request. The customer is
// referenced by email only; deleting the customer leaves the ticket intact.
type SupportTicket struct {
	ID            string    `json:"id"`
	CustomerEmail string    `json:"customer_email"`
	Subject       string    `json:"subject"`
	Message       string    `json:"message"`
	Reply         string    `json:"reply,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// EntityID returns the ticket's unique identifier.
func (t SupportTicket) EntityID() string { return t.ID }

// ValidTicketStatuses returns the set of valid ticket statuses.
func ValidTicketStatuses() []string {
	return []string{TicketStatusOpen, TicketStatusInProgress, TicketStatusClosed}
}

// IsValidTicketStatus checks whether the given string is a valid ticket status.
func IsValidTicketStatus(status string) bool {
	for _, s := range ValidTicketStatuses() {
		if s == status {
			return true
		}
	}
	return false
}
