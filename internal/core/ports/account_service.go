package ports

import (
	"context"

	"github.com/usermanager/user-management-api/internal/core/domain"
)

// RegisterInput carries the fields supplied when creating or updating a user.
type RegisterInput struct {
	Email    string
	Password string
}

// AccountService implements login, registration, profile management, and the
// password reset flow.
type AccountService interface {
	// Login authenticates by email and password and returns a signed bearer
	// token. Unknown email and wrong password are indistinguishable: both
	// return domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)

	// RequestPasswordReset issues a single-use reset token valid for a limited
	// window. For an unknown email it returns an empty token and no error so
	// that callers cannot probe which addresses are registered.
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	// ResetPassword consumes a pending reset token and installs the new
	// password. The token is invalidated in the same atomic step.
	ResetPassword(ctx context.Context, email, token, newPassword string) error

	// CreateManager registers a manager account. Only admins may call it.
	CreateManager(ctx context.Context, callerRole domain.Role, in RegisterInput) (*domain.User, error)
	// CreateClient registers a client account under the calling manager. The
	// client's manager reference is forced to managerID, never caller-supplied.
	CreateClient(ctx context.Context, callerRole domain.Role, managerID string, in RegisterInput) (*domain.User, error)

	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, in RegisterInput) (*domain.User, error)
	DeleteProfile(ctx context.Context, userID string) error
}
