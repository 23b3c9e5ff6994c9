package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/crm-service/internal/domain"
)

func strPtr(s string) *string { return &s }

func sampleIdentities() []domain.Identity {
	return []domain.Identity{
		{ID: "id-1", Email: "alice@example.com", Role: domain.RoleUser},
		{ID: "id-2", Email: "bob@example.com", Role: domain.RoleAdmin},
	}
}

func sampleProfiles() []domain.Profile {
	return []domain.Profile{
		{ID: "p-1", OwnerID: "id-1", FullName: strPtr("Alice Smith")},
		{ID: "p-2", OwnerID: "id-2", FullName: strPtr("Bob Jones"), Company: strPtr("Acme")},
	}
}

func TestEnrichTicketsResolvesOwnerMetadata(t *testing.T) {
	tickets := []domain.Ticket{
		{ID: "t-1", OwnerID: "id-1", Title: "Login broken"},
		{ID: "t-2", OwnerID: "id-2", Title: "Billing question"},
	}

	enriched := EnrichTickets(tickets, sampleProfiles(), sampleIdentities())
	require.Len(t, enriched, 2)
	assert.Equal(t, "Alice Smith", enriched[0].UserName)
	assert.Equal(t, "alice@example.com", enriched[0].UserEmail)
	assert.Equal(t, "Bob Jones", enriched[1].UserName)
	assert.Equal(t, "bob@example.com", enriched[1].UserEmail)
}

func TestEnrichTicketsPreservesCardinalityOnMisses(t *testing.T) {
	tickets := []domain.Ticket{
		{ID: "t-1", OwnerID: "id-1"},
		{ID: "t-2", OwnerID: "missing"},
		{ID: "t-3", OwnerID: "also-missing"},
	}

	enriched := EnrichTickets(tickets, sampleProfiles(), sampleIdentities())
	require.Len(t, enriched, len(tickets))
	assert.Equal(t, UnknownUser, enriched[1].UserName)
	assert.Equal(t, UnknownEmail, enriched[1].UserEmail)
	assert.Equal(t, UnknownUser, enriched[2].UserName)
}

func TestEnrichTicketsWithoutIdentitiesFallsBackToUnknownEmail(t *testing.T) {
	// The identity fetch failing wholesale must still render every ticket.
	tickets := []domain.Ticket{
		{ID: "t-1", OwnerID: "id-1"},
		{ID: "t-2", OwnerID: "id-2"},
	}

	enriched := EnrichTickets(tickets, sampleProfiles(), nil)
	require.Len(t, enriched, 2)
	for _, e := range enriched {
		assert.Equal(t, UnknownEmail, e.UserEmail)
		assert.NotEqual(t, UnknownUser, e.UserName)
	}
}

func TestEnrichTicketsEmptyInputs(t *testing.T) {
	assert.Empty(t, EnrichTickets(nil, nil, nil))
	assert.Empty(t, EnrichTickets([]domain.Ticket{}, sampleProfiles(), sampleIdentities()))
}

func TestEnrichFeedbackResolvesOwnerMetadata(t *testing.T) {
	feedback := []domain.Feedback{
		{ID: "f-1", OwnerID: "id-2", Title: "Great support", Rating: 5},
		{ID: "f-2", OwnerID: "ghost", Title: "Meh", Rating: 2},
	}

	enriched := EnrichFeedback(feedback, sampleProfiles(), sampleIdentities())
	require.Len(t, enriched, 2)
	assert.Equal(t, "Bob Jones", enriched[0].UserName)
	assert.Equal(t, UnknownUser, enriched[1].UserName)
	assert.Equal(t, UnknownEmail, enriched[1].UserEmail)
}

func TestEnrichProfilesResolvesEmailAndRole(t *testing.T) {
	accounts := EnrichProfiles(sampleProfiles(), sampleIdentities())
	require.Len(t, accounts, 2)
	assert.Equal(t, "alice@example.com", accounts[0].UserEmail)
	assert.Equal(t, domain.RoleUser, accounts[0].Role)
	assert.Equal(t, domain.RoleAdmin, accounts[1].Role)

	orphan := []domain.Profile{{ID: "p-9", OwnerID: "nobody"}}
	accounts = EnrichProfiles(orphan, sampleIdentities())
	require.Len(t, accounts, 1)
	assert.Equal(t, UnknownUser, accounts[0].UserName)
	assert.Equal(t, UnknownEmail, accounts[0].UserEmail)
}

func TestEnrichDoesNotMutateInputs(t *testing.T) {
	tickets := []domain.Ticket{{ID: "t-1", OwnerID: "id-1", Status: domain.TicketStatusOpen}}
	profiles := sampleProfiles()
	identities := sampleIdentities()

	before := tickets[0]
	_ = EnrichTickets(tickets, profiles, identities)
	assert.Equal(t, before, tickets[0])
	assert.WithinDuration(t, time.Time{}, tickets[0].CreatedAt, 0)
}
