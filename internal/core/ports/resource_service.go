package ports

import (
	"context"

	"github.com/usermanager/user-management-api/internal/core/domain"
)

// ResourceInput carries the user-supplied fields of a resource.
type ResourceInput struct {
	Title string
	URL   string
}

// ResourceService defines use-case operations for resources. Visibility and
// mutation rights are decided by the caller's role and ownership: clients
// create and mutate their own resources, managers additionally read their
// clients' resources, admins read everything. Read scope never implies
// mutation rights.
type ResourceService interface {
	Create(ctx context.Context, callerID string, callerRole domain.Role, in ResourceInput) (*domain.Resource, error)
	List(ctx context.Context, callerID string, callerRole domain.Role) ([]*domain.Resource, error)
	Update(ctx context.Context, callerID, resourceID string, in ResourceInput) (*domain.Resource, error)
	Delete(ctx context.Context, callerID, resourceID string) error
}
