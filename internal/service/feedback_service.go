package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/events"
	"github.com/spec-kit/crm-service/internal/repository"
)

// FeedbackService coordinates end-user feedback workflows.
type FeedbackService struct {
	feedback   repository.FeedbackRepository
	dispatcher events.Dispatcher
}

// NewFeedbackService constructs the service.
func NewFeedbackService(feedback repository.FeedbackRepository, dispatcher events.Dispatcher) *FeedbackService {
	return &FeedbackService{feedback: feedback, dispatcher: dispatcher}
}

// FeedbackCreateInput describes feedback creation payload.
type FeedbackCreateInput struct {
	Title   string
	Message string
	Rating  int
}

// Create records feedback owned by the caller. Out-of-range ratings are
// rejected here, before any write is attempted.
func (s *FeedbackService) Create(ctx context.Context, ownerID string, input FeedbackCreateInput) (*domain.Feedback, error) {
	if err := validateRequired("title", input.Title); err != nil {
		return nil, err
	}
	if err := validateRequired("message", input.Message); err != nil {
		return nil, err
	}
	if err := validateMaxLen("message", input.Message, maxBodyLen); err != nil {
		return nil, err
	}
	if err := ValidateRating(input.Rating); err != nil {
		return nil, err
	}

	feedback := &domain.Feedback{
		OwnerID: ownerID,
		Title:   strings.TrimSpace(input.Title),
		Message: strings.TrimSpace(input.Message),
		Rating:  input.Rating,
	}
	if err := s.feedback.Create(ctx, feedback); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventFeedbackCreated,
			SubjectID: feedback.ID,
			ActorID:   ownerID,
			Timestamp: time.Now(),
			Payload: events.FeedbackCreatedPayload{
				Title:  feedback.Title,
				Rating: feedback.Rating,
			},
		})
	}
	return feedback, nil
}

// ListOwn returns the caller's feedback, newest first.
func (s *FeedbackService) ListOwn(ctx context.Context, ownerID string) ([]domain.Feedback, error) {
	return s.feedback.List(ctx, repository.FeedbackFilter{OwnerID: &ownerID})
}
