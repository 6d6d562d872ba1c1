package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/usermanager/user-management-api/internal/api/metrics"
	"github.com/usermanager/user-management-api/internal/api/response"
	"github.com/usermanager/user-management-api/internal/core/ports"
)

// ResourceHandler handles HTTP requests for resource operations.
type ResourceHandler struct {
	service ports.ResourceService
}

func NewResourceHandler(service ports.ResourceService) *ResourceHandler {
	return &ResourceHandler{service: service}
}

type resourceRequest struct {
	Title string `json:"title" validate:"required"`
	URL   string `json:"url"   validate:"required,url"`
}

// Create stores a new resource owned by the calling client.
//
// @Summary      Create a resource
// @Tags         resources
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      resourceRequest  true  "Resource details"
// @Success      201   {object}  response.Envelope
// @Failure      400   {object}  response.Envelope
// @Failure      401   {object}  response.Envelope
// @Failure      403   {object}  response.Envelope
// @Router       /resources [post]
func (h *ResourceHandler) Create(c echo.Context) error {
	var req resourceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	}

	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	resource, err := h.service.Create(c.Request().Context(), userID, role, ports.ResourceInput{
		Title: req.Title,
		URL:   req.URL,
	})
	if err != nil {
		return httpError(c, err)
	}

	metrics.ResourcesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, response.OK(resource, "resource created successfully"))
}

// List returns the resources visible to the caller: clients see their own,
// managers see their clients', admins see everything.
//
// @Summary      List visible resources
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope
// @Failure      401  {object}  response.Envelope
// @Router       /resources [get]
func (h *ResourceHandler) List(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	resources, err := h.service.List(c.Request().Context(), userID, role)
	if err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusOK, response.OK(resources, "resources retrieved successfully"))
}

// Update modifies a resource owned by the caller.
//
// @Summary      Update a resource
// @Tags         resources
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Resource id"
// @Param        body  body      resourceRequest  true  "New resource details"
// @Success      200   {object}  response.Envelope
// @Failure      400   {object}  response.Envelope
// @Failure      401   {object}  response.Envelope
// @Failure      403   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Router       /resources/{id} [put]
func (h *ResourceHandler) Update(c echo.Context) error {
	var req resourceRequest
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

	resource, err := h.service.Update(c.Request().Context(), userID, c.Param("id"), ports.ResourceInput{
		Title: req.Title,
		URL:   req.URL,
	})
	if err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusOK, response.OK(resource, "resource updated successfully"))
}

// Delete removes a resource owned by the caller.
//
// @Summary      Delete a resource
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Resource id"
// @Success      200  {object}  response.Envelope
// @Failure      401  {object}  response.Envelope
// @Failure      403  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /resources/{id} [delete]
func (h *ResourceHandler) Delete(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusOK, response.OK(nil, "resource deleted successfully"))
}
