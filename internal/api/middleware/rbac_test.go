package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/dnexpress/logistics-api/internal/core/domain"
	"github.com/dnexpress/logistics-api/internal/core/ports"
)

func contextWithActor(actor *ports.Actor, path string, paramName, paramValue string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor != nil {
		c.Set(ActorKey, *actor)
	}
	if paramName != "" {
		c.SetParamNames(paramName)
		c.SetParamValues(paramValue)
	}
	return c
}

func okHandler(c echo.Context) error { return c.NoContent(http.StatusOK) }

func TestRBAC_AllowsListedRole(t *testing.T) {
	actor := ports.Actor{ID: "ops_1", Role: domain.RoleAdmin}
	c := contextWithActor(&actor, "/admin", "", "")

	if err := RBAC(domain.RoleAdmin)(okHandler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRBAC_RejectsOtherRoles(t *testing.T) {
	actor := ports.Actor{ID: "user_1", Role: domain.RoleCustomer}
	c := contextWithActor(&actor, "/admin", "", "")

	err := RBAC(domain.RoleAdmin)(okHandler)(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}

func TestRBAC_RequiresAuthenticatedActor(t *testing.T) {
	c := contextWithActor(nil, "/admin", "", "")

	err := RBAC(domain.RoleAdmin)(okHandler)(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestOwnerOrAdmin_Owner(t *testing.T) {
	actor := ports.Actor{ID: "user_1", Role: domain.RoleCustomer}
	c := contextWithActor(&actor, "/customers/user_1", "id", "user_1")

	if err := OwnerOrAdmin("id")(okHandler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOwnerOrAdmin_Admin(t *testing.T) {
	actor := ports.Actor{ID: "ops_1", Role: domain.RoleAdmin}
	c := contextWithActor(&actor, "/customers/user_1", "id", "user_1")

	if err := OwnerOrAdmin("id")(okHandler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOwnerOrAdmin_Stranger(t *testing.T) {
	actor := ports.Actor{ID: "user_2", Role: domain.RoleCustomer}
	c := contextWithActor(&actor, "/customers/user_1", "id", "user_1")

	err := OwnerOrAdmin("id")(okHandler)(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}
