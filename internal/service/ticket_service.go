package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/crm-service/internal/aggregate"
	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/events"
	"github.com/spec-kit/crm-service/internal/repository"
	apperrors "github.com/spec-kit/crm-service/pkg/util"
)

// TicketService coordinates end-user ticket workflows. Administrative
// operations over all tickets live in AdminService.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(tickets repository.TicketRepository, dispatcher events.Dispatcher) *TicketService {
	return &TicketService{tickets: tickets, dispatcher: dispatcher}
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Category    string
	Priority    domain.TicketPriority
}

// Create opens a ticket owned by the caller. New tickets always start open.
func (s *TicketService) Create(ctx context.Context, ownerID string, input TicketCreateInput) (*domain.Ticket, error) {
	if err := validateRequired("title", input.Title); err != nil {
		return nil, err
	}
	if err := validateRequired("description", input.Description); err != nil {
		return nil, err
	}
	if err := validateRequired("category", input.Category); err != nil {
		return nil, err
	}
	if err := validateMaxLen("title", input.Title, maxTitleLen); err != nil {
		return nil, err
	}
	if err := validateMaxLen("description", input.Description, maxBodyLen); err != nil {
		return nil, err
	}
	if input.Priority == "" {
		input.Priority = domain.TicketPriorityMedium
	}
	if !domain.ValidTicketPriority(input.Priority) {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"field": "priority"})
	}

	ticket := &domain.Ticket{
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Category:    strings.TrimSpace(input.Category),
		Priority:    input.Priority,
		Status:      domain.TicketStatusOpen,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventTicketCreated,
		SubjectID: ticket.ID,
		ActorID:   ownerID,
		Payload: events.TicketCreatedPayload{
			Title:    ticket.Title,
			Category: ticket.Category,
			Priority: ticket.Priority,
		},
	})
	return ticket, nil
}

// ListOwn returns the caller's tickets, newest first.
func (s *TicketService) ListOwn(ctx context.Context, ownerID string) ([]domain.Ticket, error) {
	return s.tickets.List(ctx, repository.TicketFilter{OwnerID: &ownerID})
}

// GetOwn fetches a ticket ensuring ownership.
func (s *TicketService) GetOwn(ctx context.Context, ownerID, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.OwnerID != ownerID {
		return nil, apperrors.NewForbidden("access denied")
	}
	return ticket, nil
}

// CountsForOwner summarizes the caller's tickets by status.
func (s *TicketService) CountsForOwner(ctx context.Context, ownerID string) (aggregate.TicketCounts, error) {
	tickets, err := s.ListOwn(ctx, ownerID)
	if err != nil {
		return aggregate.TicketCounts{}, err
	}
	return aggregate.ComputeTicketCounts(tickets), nil
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
