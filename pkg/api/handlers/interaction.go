package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	apierrors "github.com/rhicrm/rhi-backend/pkg/api/errors"
	"github.com/rhicrm/rhi-backend/pkg/interactions"
	"github.com/rhicrm/rhi-backend/pkg/models"
)

// InteractionHandler handles interaction-related HTTP requests.
type InteractionHandler struct {
	interactionService *interactions.Service
}

// NewInteractionHandler creates a new interaction handler.
func NewInteractionHandler(interactionService *interactions.Service) *InteractionHandler {
	return &InteractionHandler{interactionService: interactionService}
}

// Log godoc
// @Summary Log an interaction
// @Description Record a client contact; scores, health, tier and the site visit checklist update atomically with it
// @Tags Interactions
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param request body models.InteractionCreateRequest true "Interaction details"
// @Success 201 {object} models.InteractionResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/clients/{id}/interactions [post]
func (h *InteractionHandler) Log(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierrors.InvalidIDError(c)
	}

	var req models.InteractionCreateRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.BindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	result, err := h.interactionService.Log(ctx, clientID, req)
	if err != nil {
		return apierrors.Respond(c, err)
	}

	return c.JSON(http.StatusCreated, result)
}

// History godoc
// @Summary List a client's interactions
// @Description Interaction log for one client, newest first
// @Tags Interactions
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {array} models.Interaction
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/clients/{id}/interactions [get]
func (h *InteractionHandler) History(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierrors.InvalidIDError(c)
	}

	history, err := h.interactionService.History(ctx, clientID)
	if err != nil {
		return apierrors.Respond(c, err)
	}

	return c.JSON(http.StatusOK, history)
}
