package ports

import (
	"context"

	"github.com/usermanager/user-management-api/internal/core/domain"
)

// ResourceFilter restricts a resource listing to a visibility scope.
// All=true returns every resource (admin). Otherwise only resources whose
// owner is in OwnerIDs are returned; an empty OwnerIDs set yields an empty
// result, not an unfiltered one.
type ResourceFilter struct {
	All      bool
	OwnerIDs []string
}

// ResourceRepository defines persistence operations for resources.
type ResourceRepository interface {
	Create(ctx context.Context, r *domain.Resource) (*domain.Resource, error)
	FindByID(ctx context.Context, id string) (*domain.Resource, error)
	Update(ctx context.Context, r *domain.Resource) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ResourceFilter) ([]*domain.Resource, error)
	// DeleteByOwner removes all resources owned by the given user. Used when a
	// profile is deleted.
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}
