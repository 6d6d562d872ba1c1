package service

import "github.com/usermanager/user-management-api/internal/core/domain"

// ScopeKind is the visibility scope of a resource listing.
type ScopeKind int

const (
	// ScopeSelf limits the listing to resources owned by the caller.
	ScopeSelf ScopeKind = iota
	// ScopeManagedClients limits the listing to resources owned by the
	// caller's direct clients (one level deep, not transitive).
	ScopeManagedClients
	// ScopeAll is the unrestricted admin scope.
	ScopeAll
)

// ResourceScope maps a role to its read scope for list operations.
func ResourceScope(role domain.Role) ScopeKind {
	switch role {
	case domain.RoleAdmin:
		return ScopeAll
	case domain.RoleManager:
		return ScopeManagedClients
	default:
		return ScopeSelf
	}
}

// CanCreateResource reports whether the role may create resources. Only
// clients own resources.
func CanCreateResource(role domain.Role) bool {
	return role == domain.RoleClient
}

// CanCreateUser reports whether callerRole may create an account with
// newRole: admins create managers, managers create clients.
func CanCreateUser(callerRole, newRole domain.Role) bool {
	return callerRole.Creates(newRole)
}

// CanMutateResource reports whether the caller may update or delete the
// resource. Mutation requires exact ownership; a manager's broadened read
// scope grants no mutation rights over clients' resources.
func CanMutateResource(callerID, ownerID string) bool {
	return callerID != "" && callerID == ownerID
}
