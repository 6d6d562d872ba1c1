package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/usermanager/user-management-api/internal/api/response"
	"github.com/usermanager/user-management-api/internal/core/domain"
)

// RBAC enforces role-based access control. It assumes Auth already ran: a
// missing role means an unauthenticated request, which is distinguished from
// an authenticated caller holding the wrong role.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, _ := c.Get("role").(string)
			role, ok := domain.ParseRole(raw)
			if !ok {
				return c.JSON(http.StatusUnauthorized, response.Error("missing authentication claims"))
			}
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, response.Error("forbidden"))
			}
			return next(c)
		}
	}
}
