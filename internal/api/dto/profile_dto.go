package dto

import (
	"time"

	"github.com/spec-kit/crm-service/internal/domain"
)

// ProfileUpdateRequest carries editable profile fields. Nil fields are left
// unchanged.
type ProfileUpdateRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Company  *string `json:"company"`
}

// ProfileResponse is the public shape of a profile record.
type ProfileResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	FullName  *string   `json:"full_name"`
	Phone     *string   `json:"phone"`
	Company   *string   `json:"company"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProfileResponse maps a profile.
func NewProfileResponse(profile *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:        profile.ID,
		UserID:    profile.OwnerID,
		FullName:  profile.FullName,
		Phone:     profile.Phone,
		Company:   profile.Company,
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}
}
