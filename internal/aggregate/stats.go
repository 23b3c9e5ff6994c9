package aggregate

import (
	"time"

	"github.com/spec-kit/crm-service/internal/domain"
)

// WeeklyGrowth counts records created within the trailing seven days.
type WeeklyGrowth struct {
	Users    int `json:"users"`
	Tickets  int `json:"tickets"`
	Feedback int `json:"feedback"`
}

// DashboardStats summarizes the three admin collections. Recomputed in full
// whenever any source collection changes.
type DashboardStats struct {
	TotalUsers      int          `json:"total_users"`
	TotalTickets    int          `json:"total_tickets"`
	TotalFeedback   int          `json:"total_feedback"`
	OpenTickets     int          `json:"open_tickets"`
	ResolvedTickets int          `json:"resolved_tickets"`
	AvgRating       float64      `json:"avg_rating"`
	WeeklyGrowth    WeeklyGrowth `json:"weekly_growth"`
}

// TicketCounts summarizes a single user's tickets for the personal dashboard.
type TicketCounts struct {
	Total      int `json:"total"`
	Open       int `json:"open"`
	InProgress int `json:"in_progress"`
	Resolved   int `json:"resolved"`
}

// ComputeStats derives dashboard statistics from the raw collections. The
// weekly cutoff is evaluated once from now, not per item, so a single pass
// cannot skew across records. Average rating over an empty feedback set is 0.
func ComputeStats(profiles []domain.Profile, tickets []domain.Ticket, feedback []domain.Feedback, now time.Time) DashboardStats {
	weekAgo := now.AddDate(0, 0, -7)

	stats := DashboardStats{
		TotalUsers:    len(profiles),
		TotalTickets:  len(tickets),
		TotalFeedback: len(feedback),
	}

	for i := range tickets {
		switch tickets[i].Status {
		case domain.TicketStatusOpen:
			stats.OpenTickets++
		case domain.TicketStatusResolved:
			stats.ResolvedTickets++
		}
		if tickets[i].CreatedAt.After(weekAgo) {
			stats.WeeklyGrowth.Tickets++
		}
	}

	ratingSum := 0
	for i := range feedback {
		ratingSum += feedback[i].Rating
		if feedback[i].CreatedAt.After(weekAgo) {
			stats.WeeklyGrowth.Feedback++
		}
	}
	if len(feedback) > 0 {
		stats.AvgRating = float64(ratingSum) / float64(len(feedback))
	}

	for i := range profiles {
		if profiles[i].CreatedAt.After(weekAgo) {
			stats.WeeklyGrowth.Users++
		}
	}

	return stats
}

// ComputeTicketCounts derives per-status counts over a user's own tickets.
func ComputeTicketCounts(tickets []domain.Ticket) TicketCounts {
	counts := TicketCounts{Total: len(tickets)}
	for i := range tickets {
		switch tickets[i].Status {
		case domain.TicketStatusOpen:
			counts.Open++
		case domain.TicketStatusInProgress:
			counts.InProgress++
		case domain.TicketStatusResolved:
			counts.Resolved++
		}
	}
	return counts
}
