package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	apierrors "github.com/rhicrm/rhi-backend/pkg/api/errors"
	"github.com/rhicrm/rhi-backend/pkg/clients"
	"github.com/rhicrm/rhi-backend/pkg/models"
)

// ClientHandler handles client-related HTTP requests.
type ClientHandler struct {
	clientService *clients.Service
}

// NewClientHandler creates a new client handler.
func NewClientHandler(clientService *clients.Service) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// List godoc
// @Summary List clients
// @Description List clients filtered by tier and a search over name, phone and email
// @Tags Clients
// @Produce json
// @Param tier query string false "Tier filter (Green, Amber, Red)"
// @Param search query string false "Search over name, phone and email"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 200)"
// @Success 200 {object} models.ClientListResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	var req models.ClientListRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.BindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	response, err := h.clientService.List(ctx, req)
	if err != nil {
		return apierrors.Respond(c, err)
	}

	return c.JSON(http.StatusOK, response)
}

// Get godoc
// @Summary Get a client
// @Description Get a client with checklist progress and suggested actions
// @Tags Clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} models.ClientDetail
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierrors.InvalidIDError(c)
	}

	detail, err := h.clientService.Get(ctx, id)
	if err != nil {
		return apierrors.Respond(c, err)
	}

	return c.JSON(http.StatusOK, detail)
}

// Create godoc
// @Summary Create a client
// @Description Register a new client and seed its checklist
// @Tags Clients
// @Accept json
// @Produce json
// @Param request body models.ClientCreateRequest true "Client details"
// @Success 201 {object} models.Client
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	var req models.ClientCreateRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.BindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	client, err := h.clientService.Create(ctx, req)
	if err != nil {
		return apierrors.Respond(c, err)
	}

	return c.JSON(http.StatusCreated, client)
}

// Update godoc
// @Summary Update a client
// @Description Apply a partial update; the health score is recomputed
// @Tags Clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param request body models.ClientUpdateRequest true "Fields to update"
// @Success 200 {object} models.Client
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/clients/{id} [patch]
func (h *ClientHandler) Update(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierrors.InvalidIDError(c)
	}

	var req models.ClientUpdateRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.BindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	client, err := h.clientService.Update(ctx, id, req)
	if err != nil {
		return apierrors.Respond(c, err)
	}

	return c.JSON(http.StatusOK, client)
}

// Delete godoc
// @Summary Delete a client
// @Description Delete a client and its checklist
// @Tags Clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierrors.InvalidIDError(c)
	}

	if err := h.clientService.Delete(ctx, id); err != nil {
		return apierrors.Respond(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Client deleted successfully",
	})
}
