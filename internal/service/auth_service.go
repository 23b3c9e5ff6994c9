package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/crm-service/internal/auth"
	"github.com/spec-kit/crm-service/internal/config"
	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/repository"
	apperrors "github.com/spec-kit/crm-service/pkg/util"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	identities repository.IdentityRepository
	profiles   repository.ProfileRepository
	resets     repository.PasswordResetRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	resetTTL   time.Duration
	adminEmail string
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	IdentityRepo      repository.IdentityRepository
	ProfileRepo       repository.ProfileRepository
	PasswordResetRepo repository.PasswordResetRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		identities: deps.IdentityRepo,
		profiles:   deps.ProfileRepo,
		resets:     deps.PasswordResetRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
		adminEmail: strings.ToLower(strings.TrimSpace(cfg.Auth.BootstrapAdminEmail)),
	}
}

// Register creates a new identity with its lazily-named profile.
func (s *AuthService) Register(ctx context.Context, email, password, fullName string) (*domain.Identity, string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := ValidateEmail(email); err != nil {
		return nil, "", time.Time{}, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, "", time.Time{}, err
	}

	if _, err := s.identities.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
	} else if err != pgx.ErrNoRows {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	identity := &domain.Identity{
		Email:        email,
		PasswordHash: hash,
		Role:         s.roleFor(email),
	}
	if err := s.identities.Create(ctx, identity); err != nil {
		return nil, "", time.Time{}, err
	}

	name := strings.TrimSpace(fullName)
	if name == "" {
		name = emailLocalPart(email)
	}
	profile := &domain.Profile{OwnerID: identity.ID, FullName: &name}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(identity.ID, identity.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return identity, token, exp, nil
}

// Login authenticates an identity by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Identity, string, time.Time, error) {
	identity, err := s.identities.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(identity.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(identity.ID, identity.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return identity, token, exp, nil
}

// ChangePassword verifies the current password before updating to new hash.
func (s *AuthService) ChangePassword(ctx context.Context, identityID, currentPassword, newPassword string) error {
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}
	identity, err := s.identities.GetByID(ctx, identityID)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(identity.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthorized("invalid credentials")
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	identity.PasswordHash = hash
	return s.identities.Update(ctx, identity)
}

// RequestPasswordReset persists a single-use reset token for the email.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*repository.PasswordResetToken, error) {
	identity, err := s.identities.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}

	token := &repository.PasswordResetToken{
		IdentityID: identity.ID,
		Token:      uuid.NewString(),
		ExpiresAt:  time.Now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// ConfirmPasswordReset validates the reset token and updates the password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, tokenStr, newPassword string) error {
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}
	token, err := s.resets.GetByToken(ctx, tokenStr)
	if err != nil {
		return err
	}
	if token.UsedAt != nil || time.Now().After(token.ExpiresAt) {
		return apperrors.NewValidationError("token expired or used", nil)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	identity, err := s.identities.GetByID(ctx, token.IdentityID)
	if err != nil {
		return err
	}
	identity.PasswordHash = hash
	if err := s.identities.Update(ctx, identity); err != nil {
		return err
	}
	return s.resets.MarkUsed(ctx, token.ID)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// roleFor assigns the admin role to the configured bootstrap address. The
// role is persisted on the identity; later checks never compare emails.
func (s *AuthService) roleFor(email string) domain.Role {
	if s.adminEmail != "" && email == s.adminEmail {
		return domain.RoleAdmin
	}
	return domain.RoleUser
}

func emailLocalPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
