package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/usermanager/user-management-api/internal/core/domain"
	"github.com/usermanager/user-management-api/internal/core/ports"
)

const minPasswordLength = 6

// AccountService implements login, registration, profile management, and the
// password reset flow.
type AccountService struct {
	users     ports.UserRepository
	resources ports.ResourceRepository
	tokens    *TokenIssuer
	scope     ScopeCache
	resetTTL  time.Duration
	logger    zerolog.Logger
}

func NewAccountService(
	users ports.UserRepository,
	resources ports.ResourceRepository,
	tokens *TokenIssuer,
	scope ScopeCache,
	resetTTL time.Duration,
	logger zerolog.Logger,
) *AccountService {
	if resetTTL <= 0 {
		resetTTL = time.Hour
	}
	return &AccountService{
		users:     users,
		resources: resources,
		tokens:    tokens,
		scope:     scope,
		resetTTL:  resetTTL,
		logger:    logger,
	}
}

// NormalizeEmail lowercases and trims an email so that uniqueness and lookup
// use one consistent form. Every path that stores or looks up an email must
// go through it, including bootstrap seeding; the storage-level unique index
// therefore behaves case-insensitively.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login authenticates by email and password. Unknown email and wrong
// password yield the same ErrInvalidCredentials so callers cannot enumerate
// registered addresses.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("login succeeded")
	return token, user, nil
}

// RequestPasswordReset issues a single-use reset token. An unknown email
// returns an empty token and no error; the HTTP layer responds with the same
// generic acknowledgement either way.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return "", domain.ErrInvalidInput
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Debug().Msg("password reset requested for unknown email")
			return "", nil
		}
		return "", err
	}

	token, expires, err := NewResetToken(s.resetTTL)
	if err != nil {
		return "", err
	}

	// Overwrites any prior pending reset for this user.
	if err := s.users.SetResetToken(ctx, user.ID, token, expires); err != nil {
		return "", err
	}

	s.logger.Info().Str("user_id", user.ID).Time("expires", expires).Msg("password reset token issued")
	return token, nil
}

// ResetPassword consumes a pending reset token and installs the new password
// hash. The repository clears the token and writes the hash in one atomic
// update, so of two concurrent calls with the same token exactly one
// succeeds; the other observes ErrInvalidResetToken.
func (s *AccountService) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	email = NormalizeEmail(email)
	if email == "" || token == "" || newPassword == "" {
		return domain.ErrInvalidInput
	}
	if len(newPassword) < minPasswordLength {
		return domain.ErrInvalidInput
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Same failure as a bad token: existence is not revealed.
			return domain.ErrInvalidResetToken
		}
		return err
	}

	// Constant-time pre-check; the authoritative check-and-clear happens
	// atomically in the repository below.
	if !ResetTokenMatches(user.ResetToken, token) {
		return domain.ErrInvalidResetToken
	}
	if user.ResetTokenExpires == nil || !time.Now().UTC().Before(*user.ResetTokenExpires) {
		return domain.ErrInvalidResetToken
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.users.ConsumeResetToken(ctx, email, token, hash, time.Now().UTC()); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("password reset completed")
	return nil
}

// CreateManager registers a manager account. Only admins may call it.
func (s *AccountService) CreateManager(ctx context.Context, callerRole domain.Role, in ports.RegisterInput) (*domain.User, error) {
	if !CanCreateUser(callerRole, domain.RoleManager) {
		return nil, domain.ErrForbidden
	}
	return s.createUser(ctx, in, domain.RoleManager, "")
}

// CreateClient registers a client under the calling manager. The client's
// manager reference is forced to managerID, never taken from the payload.
func (s *AccountService) CreateClient(ctx context.Context, callerRole domain.Role, managerID string, in ports.RegisterInput) (*domain.User, error) {
	if !CanCreateUser(callerRole, domain.RoleClient) {
		return nil, domain.ErrForbidden
	}
	if managerID == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.createUser(ctx, in, domain.RoleClient, managerID)
	if err != nil {
		return nil, err
	}

	// The manager's cached client-id scope is stale now.
	if err := s.scope.Invalidate(ctx, managerID); err != nil {
		s.logger.Warn().Err(err).Str("manager_id", managerID).Msg("scope cache invalidation failed")
	}
	return user, nil
}

func (s *AccountService) createUser(ctx context.Context, in ports.RegisterInput, role domain.Role, managerID string) (*domain.User, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || len(in.Password) < minPasswordLength {
		return nil, domain.ErrInvalidInput
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		ManagerID:    managerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", string(role)).Msg("user created")
	return created, nil
}

// GetProfile returns the caller's own user record.
func (s *AccountService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// UpdateProfile changes the caller's own email and password.
func (s *AccountService) UpdateProfile(ctx context.Context, userID string, in ports.RegisterInput) (*domain.User, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || len(in.Password) < minPasswordLength {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user.Email = email
	user.PasswordHash = hash
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteProfile removes the caller's own account. A manager with remaining
// clients cannot be deleted (cascade-prevent); a client's resources are
// removed along with the account so no resource is left without an owner.
func (s *AccountService) DeleteProfile(ctx context.Context, userID string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.Role == domain.RoleManager {
		n, err := s.users.CountClients(ctx, user.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrManagerHasClients
		}
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	if user.Role == domain.RoleClient {
		if _, err := s.resources.DeleteByOwner(ctx, userID); err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to remove resources of deleted user")
		}
		if user.ManagerID != "" {
			if err := s.scope.Invalidate(ctx, user.ManagerID); err != nil {
				s.logger.Warn().Err(err).Str("manager_id", user.ManagerID).Msg("scope cache invalidation failed")
			}
		}
	}

	s.logger.Info().Str("user_id", userID).Str("role", string(user.Role)).Msg("user deleted")
	return nil
}
