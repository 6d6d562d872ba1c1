package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/usermanager/user-management-api/internal/core/domain"
	"github.com/usermanager/user-management-api/internal/core/ports"
)

func newTestResourceService(users *stubUserRepo, resources *stubResourceRepo, cache *stubScopeCache) ports.ResourceService {
	return NewResourceService(resources, users, cache, zerolog.Nop())
}

func TestResourceService_CreateOwnerFromClaims(t *testing.T) {
	svc := newTestResourceService(newStubUserRepo(), newStubResourceRepo(), newStubScopeCache())

	in := ports.ResourceInput{Title: "  Docs  ", URL: "https://example.com/docs"}
	created, err := svc.Create(context.Background(), "c-1", domain.RoleClient, in)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.OwnerID != "c-1" {
		t.Fatalf("owner id = %s, want c-1", created.OwnerID)
	}
	if created.Title != "Docs" {
		t.Fatalf("title not trimmed: %q", created.Title)
	}
	if created.ID == "" {
		t.Fatalf("expected a generated id")
	}
}

func TestResourceService_CreateRoleGate(t *testing.T) {
	svc := newTestResourceService(newStubUserRepo(), newStubResourceRepo(), newStubScopeCache())

	in := ports.ResourceInput{Title: "Docs", URL: "https://example.com"}
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleManager} {
		if _, err := svc.Create(context.Background(), "u-1", role, in); !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("%s creating resource: expected ErrForbidden, got %v", role, err)
		}
	}
}

func TestResourceService_CreateValidation(t *testing.T) {
	svc := newTestResourceService(newStubUserRepo(), newStubResourceRepo(), newStubScopeCache())

	cases := []ports.ResourceInput{
		{Title: "", URL: "https://example.com"},
		{Title: "   ", URL: "https://example.com"},
		{Title: "Docs", URL: ""},
		{Title: "Docs", URL: "not a url"},
		{Title: "Docs", URL: "/relative/path"},
	}
	for _, in := range cases {
		if _, err := svc.Create(context.Background(), "c-1", domain.RoleClient, in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("input %+v: expected ErrInvalidInput, got %v", in, err)
		}
	}
}

// seedHierarchy builds one manager with one client plus an unrelated client,
// each client owning one resource.
func seedHierarchy(t *testing.T, users *stubUserRepo, resources *stubResourceRepo) {
	t.Helper()
	seedUser(t, users, "m-1", "manager@example.com", "pass-word", domain.RoleManager, "")
	seedUser(t, users, "c-1", "client@example.com", "pass-word", domain.RoleClient, "m-1")
	seedUser(t, users, "c-2", "other@example.com", "pass-word", domain.RoleClient, "m-2")

	svc := newTestResourceService(users, resources, newStubScopeCache())
	for owner, title := range map[string]string{"c-1": "mine", "c-2": "theirs"} {
		if _, err := svc.Create(context.Background(), owner, domain.RoleClient, ports.ResourceInput{Title: title, URL: "https://example.com"}); err != nil {
			t.Fatalf("seeding resource for %s: %v", owner, err)
		}
	}
}

func TestResourceService_ListScopes(t *testing.T) {
	users := newStubUserRepo()
	resources := newStubResourceRepo()
	seedHierarchy(t, users, resources)
	svc := newTestResourceService(users, resources, newStubScopeCache())

	// Client sees only its own resource.
	own, err := svc.List(context.Background(), "c-1", domain.RoleClient)
	if err != nil {
		t.Fatalf("client list: %v", err)
	}
	if len(own) != 1 || own[0].Title != "mine" {
		t.Fatalf("client sees %d resources, want only its own", len(own))
	}

	// Manager sees its direct clients' resources.
	managed, err := svc.List(context.Background(), "m-1", domain.RoleManager)
	if err != nil {
		t.Fatalf("manager list: %v", err)
	}
	if len(managed) != 1 || managed[0].OwnerID != "c-1" {
		t.Fatalf("manager sees %d resources, want exactly c-1's", len(managed))
	}

	// Admin sees everything.
	all, err := svc.List(context.Background(), "a-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin sees %d resources, want 2", len(all))
	}
}

func TestResourceService_ListManagerWithoutClients(t *testing.T) {
	users := newStubUserRepo()
	seedUser(t, users, "m-1", "manager@example.com", "pass-word", domain.RoleManager, "")
	resources := newStubResourceRepo()
	svc := newTestResourceService(users, resources, newStubScopeCache())

	got, err := svc.List(context.Background(), "m-1", domain.RoleManager)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("manager without clients sees %d resources, want 0", len(got))
	}
}

func TestResourceService_ListPopulatesScopeCache(t *testing.T) {
	users := newStubUserRepo()
	resources := newStubResourceRepo()
	seedHierarchy(t, users, resources)
	cache := newStubScopeCache()
	svc := newTestResourceService(users, resources, cache)

	if _, err := svc.List(context.Background(), "m-1", domain.RoleManager); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	ids, ok := cache.entries["m-1"]
	if !ok || len(ids) != 1 || ids[0] != "c-1" {
		t.Fatalf("scope cache not populated with client ids: %v", cache.entries)
	}
}

func TestResourceService_ListUsesCachedScope(t *testing.T) {
	users := newStubUserRepo()
	resources := newStubResourceRepo()
	seedHierarchy(t, users, resources)
	cache := newStubScopeCache()
	// Pre-populate a scope pointing at the other client; if the cache is
	// consulted, the listing follows it instead of the user store.
	cache.entries["m-1"] = []string{"c-2"}
	svc := newTestResourceService(users, resources, cache)

	got, err := svc.List(context.Background(), "m-1", domain.RoleManager)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(got) != 1 || got[0].OwnerID != "c-2" {
		t.Fatalf("cached scope ignored, got %d resources", len(got))
	}
}

func TestResourceService_ListSurvivesCacheFailure(t *testing.T) {
	users := newStubUserRepo()
	resources := newStubResourceRepo()
	seedHierarchy(t, users, resources)
	cache := newStubScopeCache()
	cache.getErr = errors.New("cache unavailable")
	cache.failOnWrites = true
	svc := newTestResourceService(users, resources, cache)

	got, err := svc.List(context.Background(), "m-1", domain.RoleManager)
	if err != nil {
		t.Fatalf("List must fall back to the store on cache failure, got %v", err)
	}
	if len(got) != 1 || got[0].OwnerID != "c-1" {
		t.Fatalf("fallback listing wrong: %d resources", len(got))
	}
}

func TestResourceService_UpdateOwnerOnly(t *testing.T) {
	users := newStubUserRepo()
	resources := newStubResourceRepo()
	seedHierarchy(t, users, resources)
	svc := newTestResourceService(users, resources, newStubScopeCache())

	listed, err := svc.List(context.Background(), "c-1", domain.RoleClient)
	if err != nil || len(listed) != 1 {
		t.Fatalf("listing client resources: %v", err)
	}
	id := listed[0].ID

	in := ports.ResourceInput{Title: "renamed", URL: "https://example.com/new"}

	// The manager can see the resource but must not be able to change it.
	if _, err := svc.Update(context.Background(), "m-1", id, in); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("manager update: expected ErrForbidden, got %v", err)
	}

	updated, err := svc.Update(context.Background(), "c-1", id, in)
	if err != nil {
		t.Fatalf("owner update returned error: %v", err)
	}
	if updated.Title != "renamed" || updated.URL != "https://example.com/new" {
		t.Fatalf("update not applied: %+v", updated)
	}
}

func TestResourceService_DeleteOwnerOnly(t *testing.T) {
	users := newStubUserRepo()
	resources := newStubResourceRepo()
	seedHierarchy(t, users, resources)
	svc := newTestResourceService(users, resources, newStubScopeCache())

	listed, err := svc.List(context.Background(), "c-1", domain.RoleClient)
	if err != nil || len(listed) != 1 {
		t.Fatalf("listing client resources: %v", err)
	}
	id := listed[0].ID

	if err := svc.Delete(context.Background(), "m-1", id); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("manager delete: expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), "c-1", id); err != nil {
		t.Fatalf("owner delete returned error: %v", err)
	}
	if _, err := resources.FindByID(context.Background(), id); !errors.Is(err, domain.ErrResourceNotFound) {
		t.Fatalf("resource still present after delete")
	}
}

func TestResourceService_NotFound(t *testing.T) {
	svc := newTestResourceService(newStubUserRepo(), newStubResourceRepo(), newStubScopeCache())

	in := ports.ResourceInput{Title: "t", URL: "https://example.com"}
	if _, err := svc.Update(context.Background(), "c-1", "missing", in); !errors.Is(err, domain.ErrResourceNotFound) {
		t.Fatalf("update missing: expected ErrResourceNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), "c-1", "missing"); !errors.Is(err, domain.ErrResourceNotFound) {
		t.Fatalf("delete missing: expected ErrResourceNotFound, got %v", err)
	}
}
