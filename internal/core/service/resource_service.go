package service

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/usermanager/user-management-api/internal/core/domain"
	"github.com/usermanager/user-management-api/internal/core/ports"
)

// ScopeCache abstracts the manager-scope cache (Redis). It stores the set of
// client ids managed by a manager so that list operations do not hit the user
// store on every request.
type ScopeCache interface {
	// GetClientIDs returns the cached client ids and whether the cache held an
	// entry for this manager.
	GetClientIDs(ctx context.Context, managerID string) ([]string, bool, error)
	SetClientIDs(ctx context.Context, managerID string, ids []string) error
	Invalidate(ctx context.Context, managerID string) error
}

type resourceService struct {
	resources ports.ResourceRepository
	users     ports.UserRepository
	scope     ScopeCache
	log       zerolog.Logger
}

// NewResourceService returns a ResourceService implementation.
func NewResourceService(
	resources ports.ResourceRepository,
	users ports.UserRepository,
	scope ScopeCache,
	log zerolog.Logger,
) ports.ResourceService {
	return &resourceService{
		resources: resources,
		users:     users,
		scope:     scope,
		log:       log,
	}
}

// Create stores a new resource owned by the caller. Only clients create
// resources; the owner id always comes from the verified claims, never from
// the payload.
func (s *resourceService) Create(ctx context.Context, callerID string, callerRole domain.Role, in ports.ResourceInput) (*domain.Resource, error) {
	if !CanCreateResource(callerRole) {
		return nil, domain.ErrForbidden
	}
	if err := validateResourceInput(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	resource := &domain.Resource{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(in.Title),
		URL:       in.URL,
		OwnerID:   callerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.resources.Create(ctx, resource)
	if err != nil {
		s.log.Error().Err(err).Str("owner_id", callerID).Msg("failed to create resource")
		return nil, err
	}

	s.log.Info().Str("resource_id", created.ID).Str("owner_id", callerID).Msg("resource created")
	return created, nil
}

// List returns the resources visible to the caller: admins see everything,
// managers see their direct clients' resources, clients see their own.
func (s *resourceService) List(ctx context.Context, callerID string, callerRole domain.Role) ([]*domain.Resource, error) {
	var filter ports.ResourceFilter

	switch ResourceScope(callerRole) {
	case ScopeAll:
		filter.All = true
	case ScopeManagedClients:
		ids, err := s.managedClientIDs(ctx, callerID)
		if err != nil {
			return nil, err
		}
		filter.OwnerIDs = ids
	default:
		filter.OwnerIDs = []string{callerID}
	}

	return s.resources.List(ctx, filter)
}

// managedClientIDs resolves a manager's client-id set, consulting the scope
// cache first. Cache failures fall back to the user store.
func (s *resourceService) managedClientIDs(ctx context.Context, managerID string) ([]string, error) {
	ids, ok, err := s.scope.GetClientIDs(ctx, managerID)
	if err != nil {
		s.log.Warn().Err(err).Str("manager_id", managerID).Msg("scope cache read failed, querying store")
	} else if ok {
		return ids, nil
	}

	ids, err = s.users.ListClientIDs(ctx, managerID)
	if err != nil {
		return nil, err
	}

	if err := s.scope.SetClientIDs(ctx, managerID, ids); err != nil {
		s.log.Warn().Err(err).Str("manager_id", managerID).Msg("failed to populate scope cache")
	}
	return ids, nil
}

// Update modifies a resource. Only the exact owner may update; a manager's
// read scope does not extend to mutation.
func (s *resourceService) Update(ctx context.Context, callerID, resourceID string, in ports.ResourceInput) (*domain.Resource, error) {
	if err := validateResourceInput(in); err != nil {
		return nil, err
	}

	resource, err := s.resources.FindByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	if !CanMutateResource(callerID, resource.OwnerID) {
		return nil, domain.ErrForbidden
	}

	resource.Title = strings.TrimSpace(in.Title)
	resource.URL = in.URL
	resource.UpdatedAt = time.Now().UTC()

	if err := s.resources.Update(ctx, resource); err != nil {
		return nil, err
	}
	return resource, nil
}

// Delete removes a resource. Owner only, same rule as Update.
func (s *resourceService) Delete(ctx context.Context, callerID, resourceID string) error {
	resource, err := s.resources.FindByID(ctx, resourceID)
	if err != nil {
		return err
	}
	if !CanMutateResource(callerID, resource.OwnerID) {
		return domain.ErrForbidden
	}

	if err := s.resources.Delete(ctx, resourceID); err != nil {
		return err
	}

	s.log.Info().Str("resource_id", resourceID).Str("owner_id", callerID).Msg("resource deleted")
	return nil
}

func validateResourceInput(in ports.ResourceInput) error {
	if strings.TrimSpace(in.Title) == "" || in.URL == "" {
		return domain.ErrInvalidInput
	}
	u, err := url.ParseRequestURI(in.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return domain.ErrInvalidInput
	}
	return nil
}
