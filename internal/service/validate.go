package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spec-kit/crm-service/internal/domain"
	apperrors "github.com/spec-kit/crm-service/pkg/util"
)

const (
	minPasswordLen = 6
	minFullNameLen = 2
	maxTitleLen    = 200
	maxBodyLen     = 5000
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail rejects malformed addresses before any remote call.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return apperrors.NewValidationError("invalid email address", map[string]any{"field": "email"})
	}
	return nil
}

// ValidatePassword enforces the minimum length rule.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLen {
		return apperrors.NewValidationError(
			fmt.Sprintf("password must be at least %d characters", minPasswordLen),
			map[string]any{"field": "password"},
		)
	}
	return nil
}

// ValidateFullName enforces the minimum display-name length when provided.
func ValidateFullName(name string) error {
	if len(strings.TrimSpace(name)) < minFullNameLen {
		return apperrors.NewValidationError(
			fmt.Sprintf("name must be at least %d characters", minFullNameLen),
			map[string]any{"field": "full_name"},
		)
	}
	return nil
}

// ValidateRating rejects ratings outside [1,5] before they reach storage.
func ValidateRating(rating int) error {
	if rating < domain.RatingMin || rating > domain.RatingMax {
		return apperrors.NewValidationError(
			fmt.Sprintf("rating must be between %d and %d", domain.RatingMin, domain.RatingMax),
			map[string]any{"field": "rating"},
		)
	}
	return nil
}

func validateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.NewValidationError(field+" required", map[string]any{"field": field})
	}
	return nil
}

func validateMaxLen(field, value string, max int) error {
	if len(value) > max {
		return apperrors.NewValidationError(
			fmt.Sprintf("%s must be at most %d characters", field, max),
			map[string]any{"field": field},
		)
	}
	return nil
}
