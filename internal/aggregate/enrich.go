package aggregate

import (
	"strings"

	"github.com/spec-kit/crm-service/internal/domain"
)

// Placeholders rendered when a join misses. Missing joins are expected when
// a source collection failed to load or has not replicated yet.
const (
	UnknownUser  = "Unknown User"
	UnknownEmail = "Unknown Email"
)

// EnrichedTicket is a ticket annotated with display metadata resolved from
// the owning profile and identity. Never persisted.
type EnrichedTicket struct {
	domain.Ticket
	UserName  string
	UserEmail string
}

// EnrichedFeedback is a feedback record annotated with display metadata.
type EnrichedFeedback struct {
	domain.Feedback
	UserName  string
	UserEmail string
}

// UserAccount is a profile annotated with the email resolved from its
// identity, as shown in the admin user listing.
type UserAccount struct {
	domain.Profile
	UserName  string
	UserEmail string
	Role      domain.Role
}

type joinIndex struct {
	names  map[string]string
	emails map[string]string
	roles  map[string]domain.Role
}

// buildIndex maps owner ids to display names and emails once, so callers
// iterate the primary collection without a nested scan.
func buildIndex(profiles []domain.Profile, identities []domain.Identity) joinIndex {
	idx := joinIndex{
		names:  make(map[string]string, len(profiles)),
		emails: make(map[string]string, len(identities)),
		roles:  make(map[string]domain.Role, len(identities)),
	}
	for i := range profiles {
		p := &profiles[i]
		if p.FullName != nil && strings.TrimSpace(*p.FullName) != "" {
			idx.names[p.OwnerID] = *p.FullName
		}
	}
	for i := range identities {
		idx.emails[identities[i].ID] = identities[i].Email
		idx.roles[identities[i].ID] = identities[i].Role
	}
	return idx
}

func (idx joinIndex) name(ownerID string) string {
	if name, ok := idx.names[ownerID]; ok {
		return name
	}
	return UnknownUser
}

func (idx joinIndex) email(ownerID string) string {
	if email, ok := idx.emails[ownerID]; ok {
		return email
	}
	return UnknownEmail
}

// EnrichTickets left-joins tickets with profile and identity metadata.
// Every input ticket yields exactly one output record; misses degrade to
// the placeholder values. Pure function over its inputs.
func EnrichTickets(tickets []domain.Ticket, profiles []domain.Profile, identities []domain.Identity) []EnrichedTicket {
	idx := buildIndex(profiles, identities)
	out := make([]EnrichedTicket, 0, len(tickets))
	for i := range tickets {
		out = append(out, EnrichedTicket{
			Ticket:    tickets[i],
			UserName:  idx.name(tickets[i].OwnerID),
			UserEmail: idx.email(tickets[i].OwnerID),
		})
	}
	return out
}

// EnrichFeedback left-joins feedback records with profile and identity
// metadata under the same contract as EnrichTickets.
func EnrichFeedback(feedback []domain.Feedback, profiles []domain.Profile, identities []domain.Identity) []EnrichedFeedback {
	idx := buildIndex(profiles, identities)
	out := make([]EnrichedFeedback, 0, len(feedback))
	for i := range feedback {
		out = append(out, EnrichedFeedback{
			Feedback:  feedback[i],
			UserName:  idx.name(feedback[i].OwnerID),
			UserEmail: idx.email(feedback[i].OwnerID),
		})
	}
	return out
}

// EnrichProfiles resolves the email and role for each profile, producing the
// admin user listing. Identities without a replicated profile are absent by
// construction; profiles without an identity fall back to UnknownEmail.
func EnrichProfiles(profiles []domain.Profile, identities []domain.Identity) []UserAccount {
	idx := buildIndex(profiles, identities)
	out := make([]UserAccount, 0, len(profiles))
	for i := range profiles {
		name := UnknownUser
		if profiles[i].FullName != nil && strings.TrimSpace(*profiles[i].FullName) != "" {
			name = *profiles[i].FullName
		}
		out = append(out, UserAccount{
			Profile:   profiles[i],
			UserName:  name,
			UserEmail: idx.email(profiles[i].OwnerID),
			Role:      idx.roles[profiles[i].OwnerID],
		})
	}
	return out
}
