package ports

import (
	"context"
	"time"

	"github.com/usermanager/user-management-api/internal/core/domain"
)

// UserRepository defines persistence operations for users.
//
// Email uniqueness is enforced by the storage layer (unique index), not by a
// check-then-insert in application code, so concurrent registrations with the
// same email cannot both succeed.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrEmailTaken when the email
	// is already registered.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Update persists email and password hash changes for an existing user.
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error

	// ListClientIDs returns the ids of all clients whose manager is managerID.
	ListClientIDs(ctx context.Context, managerID string) ([]string, error)
	CountClients(ctx context.Context, managerID string) (int64, error)

	// SetResetToken stores a pending reset token and its expiry on the user,
	// overwriting any prior pending reset.
	SetResetToken(ctx context.Context, userID, token string, expires time.Time) error
	// ConsumeResetToken atomically clears a matching, unexpired reset token and
	// installs the new password hash in the same storage operation. When no
	// user matches (wrong token, already consumed, or expired) it returns
	// domain.ErrInvalidResetToken; of two concurrent calls with the same token
	// exactly one succeeds.
	ConsumeResetToken(ctx context.Context, email, token, newPasswordHash string, now time.Time) error
	// ClearExpiredResetTokens unsets token+expiry pairs whose expiry has
	// passed and returns the number of users touched.
	ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}
