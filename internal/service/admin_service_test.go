package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/crm-service/internal/aggregate"
	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/events"
	apperrors "github.com/spec-kit/crm-service/pkg/util"
)

type adminFixture struct {
	svc        *AdminService
	identities *fakeIdentityRepo
	profiles   *fakeProfileRepo
	tickets    *fakeTicketRepo
	feedback   *fakeFeedbackRepo
	dispatcher events.Dispatcher
}

func newAdminFixture() *adminFixture {
	f := &adminFixture{
		identities: newFakeIdentityRepo(),
		profiles:   newFakeProfileRepo(),
		tickets:    newFakeTicketRepo(),
		feedback:   newFakeFeedbackRepo(),
		dispatcher: events.NewInMemoryDispatcher(),
	}
	f.svc = NewAdminService(AdminDependencies{
		IdentityRepo: f.identities,
		ProfileRepo:  f.profiles,
		TicketRepo:   f.tickets,
		FeedbackRepo: f.feedback,
		Dispatcher:   f.dispatcher,
		Logger:       zap.NewNop(),
	})
	return f
}

func (f *adminFixture) seedUser(t *testing.T, email, name string) *domain.Identity {
	t.Helper()
	identity := &domain.Identity{Email: email, Role: domain.RoleUser}
	require.NoError(t, f.identities.Create(context.Background(), identity))
	profile := &domain.Profile{OwnerID: identity.ID, FullName: &name}
	require.NoError(t, f.profiles.Create(context.Background(), profile))
	return identity
}

func TestDashboardSnapshotJoinsAndComputes(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()

	owner := f.seedUser(t, "jane@example.com", "Jane Doe")
	require.NoError(t, f.tickets.Create(ctx, &domain.Ticket{
		OwnerID: owner.ID, Title: "Login broken", Description: "cannot sign in",
		Category: "auth", Priority: domain.TicketPriorityHigh, Status: domain.TicketStatusOpen,
	}))
	require.NoError(t, f.feedback.Create(ctx, &domain.Feedback{
		OwnerID: owner.ID, Title: "Nice", Message: "works well", Rating: 4,
	}))

	snapshot, err := f.svc.DashboardSnapshot(ctx, false)
	require.NoError(t, err)

	assert.Empty(t, snapshot.Warnings)
	assert.Equal(t, 1, snapshot.Stats.TotalUsers)
	assert.Equal(t, 1, snapshot.Stats.TotalTickets)
	assert.Equal(t, 1, snapshot.Stats.OpenTickets)
	assert.InDelta(t, 4.0, snapshot.Stats.AvgRating, 1e-9)

	require.Len(t, snapshot.Tickets, 1)
	assert.Equal(t, "Jane Doe", snapshot.Tickets[0].UserName)
	assert.Equal(t, "jane@example.com", snapshot.Tickets[0].UserEmail)

	require.Len(t, snapshot.Users, 1)
	assert.Equal(t, domain.RoleUser, snapshot.Users[0].Role)
}

func TestDashboardSnapshotDegradesOnPartialFailure(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()

	f.seedUser(t, "jane@example.com", "Jane Doe")
	f.tickets.failList = true

	snapshot, err := f.svc.DashboardSnapshot(ctx, false)
	require.NoError(t, err)

	assert.Contains(t, snapshot.Warnings, "tickets")
	assert.Empty(t, snapshot.Tickets)
	assert.Len(t, snapshot.Users, 1)
	assert.Equal(t, 0, snapshot.Stats.TotalTickets)
}

func TestDashboardSnapshotFallsBackToPlaceholdersWithoutProfiles(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()

	owner := f.seedUser(t, "jane@example.com", "Jane Doe")
	require.NoError(t, f.tickets.Create(ctx, &domain.Ticket{
		OwnerID: owner.ID, Title: "Broken", Description: "broken",
		Category: "misc", Priority: domain.TicketPriorityLow, Status: domain.TicketStatusOpen,
	}))
	f.profiles.failList = true

	snapshot, err := f.svc.DashboardSnapshot(ctx, false)
	require.NoError(t, err)

	assert.Contains(t, snapshot.Warnings, "profiles")
	require.Len(t, snapshot.Tickets, 1)
	assert.Equal(t, aggregate.UnknownUser, snapshot.Tickets[0].UserName)
	assert.Equal(t, "jane@example.com", snapshot.Tickets[0].UserEmail)
}

func TestDashboardSnapshotRendersTicketsWhenIdentitiesFail(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()

	owner := f.seedUser(t, "jane@example.com", "Jane Doe")
	require.NoError(t, f.tickets.Create(ctx, &domain.Ticket{
		OwnerID: owner.ID, Title: "Broken", Description: "broken",
		Category: "misc", Priority: domain.TicketPriorityLow, Status: domain.TicketStatusOpen,
	}))
	f.identities.failList = true

	snapshot, err := f.svc.DashboardSnapshot(ctx, false)
	require.NoError(t, err)

	assert.Contains(t, snapshot.Warnings, "identities")
	require.Len(t, snapshot.Tickets, 1)
	assert.Equal(t, "Jane Doe", snapshot.Tickets[0].UserName)
	assert.Equal(t, aggregate.UnknownEmail, snapshot.Tickets[0].UserEmail)
}

func TestDashboardSnapshotErrorsWhenAllSourcesFail(t *testing.T) {
	f := newAdminFixture()
	f.identities.failList = true
	f.profiles.failList = true
	f.tickets.failList = true
	f.feedback.failList = true

	_, err := f.svc.DashboardSnapshot(context.Background(), false)
	require.Error(t, err)
	assert.Equal(t, "INTERNAL_ERROR", apperrors.ToDomainError(err).Code)
}

func TestUpdateTicketStatusRejectsUnknownValue(t *testing.T) {
	f := newAdminFixture()

	_, err := f.svc.UpdateTicketStatus(context.Background(), "admin-1", "ticket-1", "escalated")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestUpdateTicketStatusPublishesTransition(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()

	owner := f.seedUser(t, "jane@example.com", "Jane Doe")
	ticket := &domain.Ticket{
		OwnerID: owner.ID, Title: "Broken", Description: "broken",
		Category: "misc", Priority: domain.TicketPriorityLow, Status: domain.TicketStatusOpen,
	}
	require.NoError(t, f.tickets.Create(ctx, ticket))

	var received events.Event
	f.dispatcher.Subscribe(events.EventTicketStatusChanged, func(_ context.Context, event events.Event) error {
		received = event
		return nil
	})

	updated, err := f.svc.UpdateTicketStatus(ctx, "admin-1", ticket.ID, domain.TicketStatusResolved)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusResolved, updated.Status)

	payload, ok := received.Payload.(events.TicketStatusChangedPayload)
	require.True(t, ok)
	assert.Equal(t, domain.TicketStatusOpen, payload.OldStatus)
	assert.Equal(t, domain.TicketStatusResolved, payload.NewStatus)
	assert.Equal(t, "admin-1", received.ActorID)
}

func TestDeleteTicketIsIdempotent(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()

	owner := f.seedUser(t, "jane@example.com", "Jane Doe")
	ticket := &domain.Ticket{
		OwnerID: owner.ID, Title: "Broken", Description: "broken",
		Category: "misc", Priority: domain.TicketPriorityLow, Status: domain.TicketStatusOpen,
	}
	require.NoError(t, f.tickets.Create(ctx, ticket))

	require.NoError(t, f.svc.DeleteTicket(ctx, "admin-1", ticket.ID))
	require.NoError(t, f.svc.DeleteTicket(ctx, "admin-1", ticket.ID))

	snapshot, err := f.svc.DashboardSnapshot(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Tickets)
}

func TestDeleteFeedbackIsIdempotent(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()

	owner := f.seedUser(t, "jane@example.com", "Jane Doe")
	feedback := &domain.Feedback{OwnerID: owner.ID, Title: "Nice", Message: "works", Rating: 5}
	require.NoError(t, f.feedback.Create(ctx, feedback))

	require.NoError(t, f.svc.DeleteFeedback(ctx, "admin-1", feedback.ID))
	require.NoError(t, f.svc.DeleteFeedback(ctx, "admin-1", feedback.ID))

	snapshot, err := f.svc.DashboardSnapshot(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Feedback)
	assert.Zero(t, snapshot.Stats.AvgRating)
}
