package dto

import (
	"time"

	"github.com/spec-kit/crm-service/internal/domain"
)

// FeedbackCreateRequest payload for submitting feedback.
type FeedbackCreateRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Rating  int    `json:"rating"`
}

// FeedbackResponse is the public shape of a feedback record.
type FeedbackResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// NewFeedbackResponse maps a feedback record.
func NewFeedbackResponse(feedback *domain.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:        feedback.ID,
		UserID:    feedback.OwnerID,
		Title:     feedback.Title,
		Message:   feedback.Message,
		Rating:    feedback.Rating,
		CreatedAt: feedback.CreatedAt,
	}
}

// NewFeedbackResponses maps a feedback slice, preserving order.
func NewFeedbackResponses(feedback []domain.Feedback) []FeedbackResponse {
	out := make([]FeedbackResponse, 0, len(feedback))
	for i := range feedback {
		out = append(out, NewFeedbackResponse(&feedback[i]))
	}
	return out
}
