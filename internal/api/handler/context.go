package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/usermanager/user-management-api/internal/core/domain"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: both a valid role and
// a non-empty user id must be present (presence proves the middleware ran).
func ctxClaims(c echo.Context) (userID string, role domain.Role, err error) {
	raw, _ := c.Get("role").(string)
	role, ok := domain.ParseRole(raw)
	if !ok {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	userID, _ = c.Get("user_id").(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "token missing user identity")
	}

	return userID, role, nil
}
