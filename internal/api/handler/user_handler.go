package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/usermanager/user-management-api/internal/api/metrics"
	"github.com/usermanager/user-management-api/internal/api/response"
	"github.com/usermanager/user-management-api/internal/core/domain"
	"github.com/usermanager/user-management-api/internal/core/ports"
)

// UserHandler handles user creation and profile management.
type UserHandler struct {
	service ports.AccountService
}

func NewUserHandler(service ports.AccountService) *UserHandler {
	return &UserHandler{service: service}
}

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// CreateManager registers a new manager account. Admin only.
//
// @Summary      Create a manager
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerRequest  true  "Manager details"
// @Success      201   {object}  response.Envelope
// @Failure      400   {object}  response.Envelope
// @Failure      401   {object}  response.Envelope
// @Failure      403   {object}  response.Envelope
// @Failure      409   {object}  response.Envelope
// @Router       /users/managers [post]
func (h *UserHandler) CreateManager(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	}

	_, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.service.CreateManager(c.Request().Context(), role, ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return httpError(c, err)
	}

	metrics.UsersCreatedTotal.WithLabelValues(string(domain.RoleManager)).Inc()
	return c.JSON(http.StatusCreated, response.OK(user, "manager created successfully"))
}

// CreateClient registers a new client under the calling manager. Manager only.
//
// @Summary      Create a client
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerRequest  true  "Client details"
// @Success      201   {object}  response.Envelope
// @Failure      400   {object}  response.Envelope
// @Failure      401   {object}  response.Envelope
// @Failure      403   {object}  response.Envelope
// @Failure      409   {object}  response.Envelope
// @Router       /users/clients [post]
func (h *UserHandler) CreateClient(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	}

	managerID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.service.CreateClient(c.Request().Context(), role, managerID, ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return httpError(c, err)
	}

	metrics.UsersCreatedTotal.WithLabelValues(string(domain.RoleClient)).Inc()
	return c.JSON(http.StatusCreated, response.OK(user, "client created successfully"))
}

// GetProfile returns the calling user's own profile.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope
// @Failure      401  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /users/profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.service.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusOK, response.OK(user, ""))
}

// UpdateProfile updates the calling user's own email and password.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerRequest  true  "New profile details"
// @Success      200   {object}  response.Envelope
// @Failure      400   {object}  response.Envelope
// @Failure      401   {object}  response.Envelope
// @Failure      409   {object}  response.Envelope
// @Router       /users/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	}

	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.service.UpdateProfile(c.Request().Context(), userID, ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusOK, response.OK(user, "profile updated successfully"))
}

// DeleteProfile deletes the calling user's own account.
//
// @Summary      Delete own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope
// @Failure      401  {object}  response.Envelope
// @Failure      409  {object}  response.Envelope
// @Router       /users/profile [delete]
func (h *UserHandler) DeleteProfile(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteProfile(c.Request().Context(), userID); err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusOK, response.OK(nil, "profile deleted successfully"))
}
