package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/crm-service/internal/aggregate"
	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/events"
	"github.com/spec-kit/crm-service/internal/persistence"
	"github.com/spec-kit/crm-service/internal/repository"
	apperrors "github.com/spec-kit/crm-service/pkg/util"
)

const snapshotCacheKey = "admin:dashboard:snapshot"

// Snapshot is the assembled admin dashboard view: the three enriched
// collections plus derived statistics. Warnings name the sources that
// failed during a degraded refresh.
type Snapshot struct {
	Stats       aggregate.DashboardStats     `json:"stats"`
	Users       []aggregate.UserAccount      `json:"users"`
	Tickets     []aggregate.EnrichedTicket   `json:"tickets"`
	Feedback    []aggregate.EnrichedFeedback `json:"feedback"`
	Warnings    []string                     `json:"warnings,omitempty"`
	GeneratedAt time.Time                    `json:"generated_at"`
}

// AdminService assembles cross-entity views and performs administrative
// mutations over all rows. Role checks happen in the HTTP layer before any
// of these methods run.
type AdminService struct {
	identities repository.IdentityRepository
	profiles   repository.ProfileRepository
	tickets    repository.TicketRepository
	feedback   repository.FeedbackRepository
	dispatcher events.Dispatcher
	cache      *persistence.Redis
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// AdminDependencies bundles repositories for the admin service.
type AdminDependencies struct {
	IdentityRepo repository.IdentityRepository
	ProfileRepo  repository.ProfileRepository
	TicketRepo   repository.TicketRepository
	FeedbackRepo repository.FeedbackRepository
	Dispatcher   events.Dispatcher
	Cache        *persistence.Redis
	CacheTTL     time.Duration
	Logger       *zap.Logger
}

// NewAdminService constructs the service.
func NewAdminService(deps AdminDependencies) *AdminService {
	return &AdminService{
		identities: deps.IdentityRepo,
		profiles:   deps.ProfileRepo,
		tickets:    deps.TicketRepo,
		feedback:   deps.FeedbackRepo,
		dispatcher: deps.Dispatcher,
		cache:      deps.Cache,
		cacheTTL:   deps.CacheTTL,
		logger:     deps.Logger,
	}
}

// DashboardSnapshot returns the assembled dashboard, served from the Redis
// cache when fresh. A cached snapshot is only ever a complete one.
func (s *AdminService) DashboardSnapshot(ctx context.Context, refresh bool) (*Snapshot, error) {
	if !refresh && s.cacheTTL > 0 {
		if payload, err := s.cache.GetCached(ctx, snapshotCacheKey); err == nil {
			var snapshot Snapshot
			if err := json.Unmarshal(payload, &snapshot); err == nil {
				return &snapshot, nil
			}
		} else if !persistence.IsCacheMiss(err) {
			s.logger.Warn("snapshot cache read failed", zap.Error(err))
		}
	}

	snapshot, err := s.buildSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	if s.cacheTTL > 0 && len(snapshot.Warnings) == 0 {
		if payload, err := json.Marshal(snapshot); err == nil {
			if err := s.cache.SetCached(ctx, snapshotCacheKey, payload, s.cacheTTL); err != nil {
				s.logger.Warn("snapshot cache write failed", zap.Error(err))
			}
		}
	}
	return snapshot, nil
}

// buildSnapshot issues the source fetches concurrently and joins on
// completion of all of them. Partial failures degrade: the failed source
// contributes an empty collection, enrichment falls back to placeholders,
// and the failure is reported as a warning. Only total failure errors out.
func (s *AdminService) buildSnapshot(ctx context.Context) (*Snapshot, error) {
	var (
		identities []domain.Identity
		profiles   []domain.Profile
		tickets    []domain.Ticket
		feedback   []domain.Feedback

		identityErr error
		profileErr  error
		ticketErr   error
		feedbackErr error
	)

	var g errgroup.Group
	g.Go(func() error {
		identities, identityErr = s.identities.List(ctx)
		return nil
	})
	g.Go(func() error {
		profiles, profileErr = s.profiles.List(ctx)
		return nil
	})
	g.Go(func() error {
		tickets, ticketErr = s.tickets.List(ctx, repository.TicketFilter{})
		return nil
	})
	g.Go(func() error {
		feedback, feedbackErr = s.feedback.List(ctx, repository.FeedbackFilter{})
		return nil
	})
	_ = g.Wait()

	var warnings []string
	for _, source := range []struct {
		name string
		err  error
	}{
		{"identities", identityErr},
		{"profiles", profileErr},
		{"tickets", ticketErr},
		{"feedback", feedbackErr},
	} {
		if source.err != nil {
			s.logger.Warn("dashboard source fetch failed",
				zap.String("source", source.name), zap.Error(source.err))
			warnings = append(warnings, source.name)
		}
	}
	if identityErr != nil && profileErr != nil && ticketErr != nil && feedbackErr != nil {
		return nil, apperrors.NewInternalError(identityErr)
	}

	now := time.Now()
	return &Snapshot{
		Stats:       aggregate.ComputeStats(profiles, tickets, feedback, now),
		Users:       aggregate.EnrichProfiles(profiles, identities),
		Tickets:     aggregate.EnrichTickets(tickets, profiles, identities),
		Feedback:    aggregate.EnrichFeedback(feedback, profiles, identities),
		Warnings:    warnings,
		GeneratedAt: now,
	}, nil
}

// ListIdentities returns all authentication identities.
func (s *AdminService) ListIdentities(ctx context.Context) ([]domain.Identity, error) {
	return s.identities.List(ctx)
}

// UpdateTicketStatus replaces a ticket's status. Transitions are
// unconstrained; the value itself must be a known status.
func (s *AdminService) UpdateTicketStatus(ctx context.Context, actorID, ticketID string, newStatus domain.TicketStatus) (*domain.Ticket, error) {
	if !domain.ValidTicketStatus(newStatus) {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"field": "status"})
	}
	before, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	ticket, err := s.tickets.UpdateStatus(ctx, ticketID, newStatus)
	if err != nil {
		return nil, err
	}
	s.invalidateSnapshot(ctx)
	s.publish(ctx, events.Event{
		Type:      events.EventTicketStatusChanged,
		SubjectID: ticket.ID,
		ActorID:   actorID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: before.Status,
			NewStatus: ticket.Status,
		},
	})
	return ticket, nil
}

// DeleteTicket removes a ticket. Deleting an id that no longer exists is a
// no-op success, so a retried delete converges to the same end state.
func (s *AdminService) DeleteTicket(ctx context.Context, actorID, ticketID string) error {
	if err := s.tickets.Delete(ctx, ticketID); err != nil {
		return err
	}
	s.invalidateSnapshot(ctx)
	s.publish(ctx, events.Event{
		Type:      events.EventTicketDeleted,
		SubjectID: ticketID,
		ActorID:   actorID,
	})
	return nil
}

// DeleteFeedback removes a feedback record under the same idempotent
// contract as DeleteTicket.
func (s *AdminService) DeleteFeedback(ctx context.Context, actorID, feedbackID string) error {
	if err := s.feedback.Delete(ctx, feedbackID); err != nil {
		return err
	}
	s.invalidateSnapshot(ctx)
	s.publish(ctx, events.Event{
		Type:      events.EventFeedbackDeleted,
		SubjectID: feedbackID,
		ActorID:   actorID,
	})
	return nil
}

func (s *AdminService) invalidateSnapshot(ctx context.Context) {
	if s.cacheTTL <= 0 {
		return
	}
	if err := s.cache.Invalidate(ctx, snapshotCacheKey); err != nil {
		s.logger.Warn("snapshot cache invalidation failed", zap.Error(err))
	}
}

func (s *AdminService) publish(ctx context.Context, event events.Event) {
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
