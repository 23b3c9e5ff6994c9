package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/crm-service/internal/domain"
	apperrors "github.com/spec-kit/crm-service/pkg/util"
)

func newGuardedApp(principal *Principal) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if principal != nil {
			c.Locals(principalKey, principal)
		}
		return c.Next()
	})
	app.Get("/admin", RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestRequireAdminAllowsAdminRole(t *testing.T) {
	app := newGuardedApp(&Principal{Identity: &domain.Identity{ID: "1", Role: domain.RoleAdmin}})

	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAdminRejectsUserRoleBeforeHandler(t *testing.T) {
	app := newGuardedApp(&Principal{Identity: &domain.Identity{ID: "1", Role: domain.RoleUser}})

	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	require.NoError(t, err)
	// Fiber's default error handler maps the raw DomainError message to 500;
	// the route handler itself must never run.
	assert.NotEqual(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAdminRejectsMissingPrincipal(t *testing.T) {
	app := newGuardedApp(nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	require.NoError(t, err)
	assert.NotEqual(t, fiber.StatusOK, resp.StatusCode)
}

func TestPrincipalIsAdmin(t *testing.T) {
	assert.False(t, (&Principal{Identity: &domain.Identity{Role: domain.RoleUser}}).IsAdmin())
	assert.True(t, (&Principal{Identity: &domain.Identity{Role: domain.RoleAdmin}}).IsAdmin())
}

func TestDomainErrorCodesFromGuards(t *testing.T) {
	err := apperrors.ToDomainError(apperrors.NewForbidden("admin role required"))
	assert.Equal(t, "FORBIDDEN", err.Code)
	assert.Equal(t, fiber.StatusForbidden, err.HTTPStatus)
}
