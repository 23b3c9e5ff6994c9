package dto

import (
	"time"

	"github.com/spec-kit/crm-service/internal/aggregate"
)

// TicketStatusUpdateRequest payload for the admin status change.
type TicketStatusUpdateRequest struct {
	Status string `json:"status"`
}

// EnrichedTicketResponse is a ticket annotated with the resolved owner
// display name and email.
type EnrichedTicketResponse struct {
	TicketResponse
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

// EnrichedFeedbackResponse is a feedback record annotated with the resolved
// owner display name and email.
type EnrichedFeedbackResponse struct {
	FeedbackResponse
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

// UserAccountResponse is a row in the admin user listing.
type UserAccountResponse struct {
	ProfileResponse
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
	Role      string `json:"role"`
}

// DashboardResponse is the full admin dashboard payload.
type DashboardResponse struct {
	Stats       aggregate.DashboardStats   `json:"stats"`
	Users       []UserAccountResponse      `json:"users"`
	Tickets     []EnrichedTicketResponse   `json:"tickets"`
	Feedback    []EnrichedFeedbackResponse `json:"feedback"`
	Warnings    []string                   `json:"warnings,omitempty"`
	GeneratedAt time.Time                  `json:"generated_at"`
}

// NewEnrichedTicketResponses maps enriched tickets, preserving order.
func NewEnrichedTicketResponses(tickets []aggregate.EnrichedTicket) []EnrichedTicketResponse {
	out := make([]EnrichedTicketResponse, 0, len(tickets))
	for i := range tickets {
		out = append(out, EnrichedTicketResponse{
			TicketResponse: NewTicketResponse(&tickets[i].Ticket),
			UserName:       tickets[i].UserName,
			UserEmail:      tickets[i].UserEmail,
		})
	}
	return out
}

// NewEnrichedFeedbackResponses maps enriched feedback, preserving order.
func NewEnrichedFeedbackResponses(feedback []aggregate.EnrichedFeedback) []EnrichedFeedbackResponse {
	out := make([]EnrichedFeedbackResponse, 0, len(feedback))
	for i := range feedback {
		out = append(out, EnrichedFeedbackResponse{
			FeedbackResponse: NewFeedbackResponse(&feedback[i].Feedback),
			UserName:         feedback[i].UserName,
			UserEmail:        feedback[i].UserEmail,
		})
	}
	return out
}

// NewUserAccountResponses maps user accounts, preserving order.
func NewUserAccountResponses(users []aggregate.UserAccount) []UserAccountResponse {
	out := make([]UserAccountResponse, 0, len(users))
	for i := range users {
		out = append(out, UserAccountResponse{
			ProfileResponse: NewProfileResponse(&users[i].Profile),
			UserName:        users[i].UserName,
			UserEmail:       users[i].UserEmail,
			Role:            string(users[i].Role),
		})
	}
	return out
}
