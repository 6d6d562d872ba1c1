package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/usermanager/user-management-api/internal/api/response"
	"github.com/usermanager/user-management-api/internal/core/domain"
)

// httpError maps known domain errors to their HTTP status code and the
// canonical envelope. Unknown errors are returned unchanged so the central
// error handler can log them and render a generic 500.
func httpError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, response.Error("invalid credentials"))
	case errors.Is(err, domain.ErrForbidden):
		return c.JSON(http.StatusForbidden, response.Error("access forbidden"))
	case errors.Is(err, domain.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, response.Error("user not found"))
	case errors.Is(err, domain.ErrResourceNotFound):
		return c.JSON(http.StatusNotFound, response.Error("resource not found"))
	case errors.Is(err, domain.ErrEmailTaken):
		return c.JSON(http.StatusConflict, response.Error("email is already taken"))
	case errors.Is(err, domain.ErrManagerHasClients):
		return c.JSON(http.StatusConflict, response.Error("manager still has clients"))
	case errors.Is(err, domain.ErrInvalidResetToken):
		return c.JSON(http.StatusBadRequest, response.Error("invalid or expired token"))
	case errors.Is(err, domain.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, response.Error("invalid input"))
	}
	return err
}
