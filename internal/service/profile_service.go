package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/repository"
)

// ProfileService manages the per-identity profile record.
type ProfileService struct {
	profiles   repository.ProfileRepository
	identities repository.IdentityRepository
}

// NewProfileService constructs the service.
func NewProfileService(profiles repository.ProfileRepository, identities repository.IdentityRepository) *ProfileService {
	return &ProfileService{profiles: profiles, identities: identities}
}

// ProfileInput describes editable profile fields.
type ProfileInput struct {
	FullName *string
	Phone    *string
	Company  *string
}

// GetOrCreate returns the identity's profile, creating it on first access
// with the email local-part as the default display name.
func (s *ProfileService) GetOrCreate(ctx context.Context, identity *domain.Identity) (*domain.Profile, error) {
	profile, err := s.profiles.GetByOwner(ctx, identity.ID)
	if err == nil {
		return profile, nil
	}
	if err != pgx.ErrNoRows {
		return nil, err
	}

	name := emailLocalPart(identity.Email)
	profile = &domain.Profile{OwnerID: identity.ID, FullName: &name}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Update upserts the identity's profile fields.
func (s *ProfileService) Update(ctx context.Context, identity *domain.Identity, input ProfileInput) (*domain.Profile, error) {
	if input.FullName != nil {
		if err := ValidateFullName(*input.FullName); err != nil {
			return nil, err
		}
		trimmed := strings.TrimSpace(*input.FullName)
		input.FullName = &trimmed
	}

	profile := &domain.Profile{
		OwnerID:  identity.ID,
		FullName: input.FullName,
		Phone:    input.Phone,
		Company:  input.Company,
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
