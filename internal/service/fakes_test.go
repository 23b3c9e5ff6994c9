package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/repository"
)

var errStorageDown = errors.New("storage unavailable")

type fakeIdentityRepo struct {
	identities map[string]*domain.Identity
	nextID     int
	failList   bool
}

func newFakeIdentityRepo() *fakeIdentityRepo {
	return &fakeIdentityRepo{identities: make(map[string]*domain.Identity)}
}

func (r *fakeIdentityRepo) Create(_ context.Context, identity *domain.Identity) error {
	r.nextID++
	identity.ID = fmt.Sprintf("identity-%d", r.nextID)
	identity.CreatedAt = time.Now()
	identity.UpdatedAt = identity.CreatedAt
	clone := *identity
	r.identities[identity.ID] = &clone
	return nil
}

func (r *fakeIdentityRepo) Update(_ context.Context, identity *domain.Identity) error {
	if _, ok := r.identities[identity.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *identity
	r.identities[identity.ID] = &clone
	return nil
}

func (r *fakeIdentityRepo) GetByID(_ context.Context, id string) (*domain.Identity, error) {
	identity, ok := r.identities[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *identity
	return &clone, nil
}

func (r *fakeIdentityRepo) GetByEmail(_ context.Context, email string) (*domain.Identity, error) {
	for _, identity := range r.identities {
		if identity.Email == email {
			clone := *identity
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeIdentityRepo) List(_ context.Context) ([]domain.Identity, error) {
	if r.failList {
		return nil, errStorageDown
	}
	out := make([]domain.Identity, 0, len(r.identities))
	for _, identity := range r.identities {
		out = append(out, *identity)
	}
	return out, nil
}

type fakeProfileRepo struct {
	profiles map[string]*domain.Profile
	nextID   int
	failList bool
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*domain.Profile)}
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *domain.Profile) error {
	r.nextID++
	profile.ID = fmt.Sprintf("profile-%d", r.nextID)
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt
	clone := *profile
	r.profiles[profile.OwnerID] = &clone
	return nil
}

func (r *fakeProfileRepo) Upsert(_ context.Context, profile *domain.Profile) error {
	if existing, ok := r.profiles[profile.OwnerID]; ok {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
		profile.UpdatedAt = time.Now()
		clone := *profile
		r.profiles[profile.OwnerID] = &clone
		return nil
	}
	return r.Create(context.Background(), profile)
}

func (r *fakeProfileRepo) GetByOwner(_ context.Context, ownerID string) (*domain.Profile, error) {
	profile, ok := r.profiles[ownerID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *profile
	return &clone, nil
}

func (r *fakeProfileRepo) List(_ context.Context) ([]domain.Profile, error) {
	if r.failList {
		return nil, errStorageDown
	}
	out := make([]domain.Profile, 0, len(r.profiles))
	for _, profile := range r.profiles {
		out = append(out, *profile)
	}
	return out, nil
}

type fakeTicketRepo struct {
	tickets  []domain.Ticket
	nextID   int
	failList bool
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.nextID++
	ticket.ID = fmt.Sprintf("ticket-%d", r.nextID)
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	r.tickets = append(r.tickets, *ticket)
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	for i := range r.tickets {
		if r.tickets[i].ID == id {
			clone := r.tickets[i]
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeTicketRepo) List(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	if r.failList {
		return nil, errStorageDown
	}
	out := make([]domain.Ticket, 0, len(r.tickets))
	for _, ticket := range r.tickets {
		if filter.OwnerID != nil && ticket.OwnerID != *filter.OwnerID {
			continue
		}
		out = append(out, ticket)
	}
	return out, nil
}

func (r *fakeTicketRepo) UpdateStatus(_ context.Context, id string, status domain.TicketStatus) (*domain.Ticket, error) {
	for i := range r.tickets {
		if r.tickets[i].ID == id {
			r.tickets[i].Status = status
			r.tickets[i].UpdatedAt = time.Now()
			clone := r.tickets[i]
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeTicketRepo) Delete(_ context.Context, id string) error {
	for i := range r.tickets {
		if r.tickets[i].ID == id {
			r.tickets = append(r.tickets[:i], r.tickets[i+1:]...)
			return nil
		}
	}
	// Absent ids delete successfully.
	return nil
}

type fakeFeedbackRepo struct {
	feedback []domain.Feedback
	nextID   int
	failList bool
}

func newFakeFeedbackRepo() *fakeFeedbackRepo {
	return &fakeFeedbackRepo{}
}

func (r *fakeFeedbackRepo) Create(_ context.Context, feedback *domain.Feedback) error {
	r.nextID++
	feedback.ID = fmt.Sprintf("feedback-%d", r.nextID)
	feedback.CreatedAt = time.Now()
	r.feedback = append(r.feedback, *feedback)
	return nil
}

func (r *fakeFeedbackRepo) GetByID(_ context.Context, id string) (*domain.Feedback, error) {
	for i := range r.feedback {
		if r.feedback[i].ID == id {
			clone := r.feedback[i]
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeFeedbackRepo) List(_ context.Context, filter repository.FeedbackFilter) ([]domain.Feedback, error) {
	if r.failList {
		return nil, errStorageDown
	}
	out := make([]domain.Feedback, 0, len(r.feedback))
	for _, feedback := range r.feedback {
		if filter.OwnerID != nil && feedback.OwnerID != *filter.OwnerID {
			continue
		}
		out = append(out, feedback)
	}
	return out, nil
}

func (r *fakeFeedbackRepo) Delete(_ context.Context, id string) error {
	for i := range r.feedback {
		if r.feedback[i].ID == id {
			r.feedback = append(r.feedback[:i], r.feedback[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeResetRepo struct {
	tokens map[string]*repository.PasswordResetToken
	nextID int
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{tokens: make(map[string]*repository.PasswordResetToken)}
}

func (r *fakeResetRepo) Create(_ context.Context, token *repository.PasswordResetToken) error {
	r.nextID++
	token.ID = fmt.Sprintf("reset-%d", r.nextID)
	token.CreatedAt = time.Now()
	clone := *token
	r.tokens[token.Token] = &clone
	return nil
}

func (r *fakeResetRepo) GetByToken(_ context.Context, tokenStr string) (*repository.PasswordResetToken, error) {
	token, ok := r.tokens[tokenStr]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *token
	return &clone, nil
}

func (r *fakeResetRepo) MarkUsed(_ context.Context, id string) error {
	for _, token := range r.tokens {
		if token.ID == id {
			now := time.Now()
			token.UsedAt = &now
			return nil
		}
	}
	return pgx.ErrNoRows
}
