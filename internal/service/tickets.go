package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/mousesolnat/saleplugin-sub000/internal/domain"
	"github.com/mousesolnat/saleplugin-sub000/internal/repository"
	"github.com/mousesolnat/saleplugin-sub000/pkg/logger"
	"github.com/mousesolnat/saleplugin-sub000/pkg/validator"
)

// TicketInput is a customer's support request.
type TicketInput struct {
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// TicketService handles the customer-facing side of support tickets.
type TicketService struct {
	tickets *repository.Collection[domain.SupportTicket]
}

// NewTicketService creates a ticket service over the ticket collection.
func NewTicketService(tickets *repository.Collection[domain.SupportTicket]) *TicketService {
	return &TicketService{tickets: tickets}
}

// Submit files a new ticket in the open state.
func (s *TicketService) Submit(ctx context.Context, in TicketInput) (domain.SupportTicket, error) {
	if err := validator.Validate(in); err != nil {
		return domain.SupportTicket{}, err
	}

	now := time.Now().UTC()
	ticket := domain.SupportTicket{
		ID:            domain.NewID("tick"),
		CustomerEmail: in.Email,
		Subject:       in.Subject,
		Message:       in.Message,
		Status:        domain.TicketStatusOpen,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.tickets.Add(ctx, ticket); err != nil {
		return domain.SupportTicket{}, err
	}

	logger.FromContext(ctx).InfoContext(ctx, "ticket submitted", slog.String("ticket_id", ticket.ID))
	return ticket, nil
}

// For returns the tickets filed under the given email, newest first.
func (s *TicketService) For(email string) []domain.SupportTicket {
	all := s.tickets.All()
	matched := make([]domain.SupportTicket, 0)
	for _, t := range all {
		if t.CustomerEmail == email {
			matched = append(matched, t)
		}
	}
	for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
		matched[i], matched[j] = matched[j], matched[i]
	}
	return matched
}
