package aggregate

import (
	"strconv"
	"strings"
)

// FilterAll is the sentinel meaning "no constraint" for equality filters.
const FilterAll = "all"

// TicketFilter narrows an enriched ticket collection. Search is a
// case-insensitive substring match across title, description and the
// resolved user name; Status and Priority are exact matches or FilterAll.
type TicketFilter struct {
	Search   string
	Status   string
	Priority string
}

// FeedbackFilter narrows an enriched feedback collection. Rating is the
// numeric rating as a string, or FilterAll.
type FeedbackFilter struct {
	Search string
	Rating string
}

// UserFilter narrows the admin user listing by free-text search only.
type UserFilter struct {
	Search string
}

func matchesSearch(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func matchesEquality(filter, value string) bool {
	return filter == "" || filter == FilterAll || filter == value
}

// FilterTickets returns the subset of tickets satisfying every active
// predicate, preserving input order. The input slice is never mutated.
func FilterTickets(tickets []EnrichedTicket, f TicketFilter) []EnrichedTicket {
	out := make([]EnrichedTicket, 0, len(tickets))
	for i := range tickets {
		t := &tickets[i]
		if !matchesSearch(f.Search, t.Title, t.Description, t.UserName) {
			continue
		}
		if !matchesEquality(f.Status, string(t.Status)) {
			continue
		}
		if !matchesEquality(f.Priority, string(t.Priority)) {
			continue
		}
		out = append(out, *t)
	}
	return out
}

// FilterFeedback returns the subset of feedback satisfying every active
// predicate, preserving input order.
func FilterFeedback(feedback []EnrichedFeedback, f FeedbackFilter) []EnrichedFeedback {
	out := make([]EnrichedFeedback, 0, len(feedback))
	for i := range feedback {
		fb := &feedback[i]
		if !matchesSearch(f.Search, fb.Title, fb.Message, fb.UserName) {
			continue
		}
		if !matchesEquality(f.Rating, strconv.Itoa(fb.Rating)) {
			continue
		}
		out = append(out, *fb)
	}
	return out
}

// FilterUsers returns the subset of user accounts whose name, email or
// company matches the search term.
func FilterUsers(users []UserAccount, f UserFilter) []UserAccount {
	out := make([]UserAccount, 0, len(users))
	for i := range users {
		u := &users[i]
		company := ""
		if u.Company != nil {
			company = *u.Company
		}
		if !matchesSearch(f.Search, u.UserName, u.UserEmail, company) {
			continue
		}
		out = append(out, *u)
	}
	return out
}
