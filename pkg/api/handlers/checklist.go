package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	apierrors "github.com/rhicrm/rhi-backend/pkg/api/errors"
	"github.com/rhicrm/rhi-backend/pkg/checklist"
	"github.com/rhicrm/rhi-backend/pkg/models"
)

// ChecklistHandler handles checklist-related HTTP requests.
type ChecklistHandler struct {
	checklistService *checklist.Service
}

// NewChecklistHandler creates a new checklist handler.
func NewChecklistHandler(checklistService *checklist.Service) *ChecklistHandler {
	return &ChecklistHandler{checklistService: checklistService}
}

// List godoc
// @Summary List a client's checklist
// @Description The fixed touchpoint catalogue with per-item done state
// @Tags Checklist
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {array} models.ChecklistItem
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/clients/{id}/checklist [get]
func (h *ChecklistHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierrors.InvalidIDError(c)
	}

	items, err := h.checklistService.List(ctx, clientID)
	if err != nil {
		return apierrors.Respond(c, err)
	}

	return c.JSON(http.StatusOK, items)
}

// Toggle godoc
// @Summary Toggle a checklist item
// @Description Set one item's done state; the done timestamp follows the transition
// @Tags Checklist
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param item path string true "Checklist item key"
// @Param request body models.ChecklistToggleRequest true "Done state"
// @Success 200 {object} models.ChecklistItem
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/clients/{id}/checklist/{item} [put]
func (h *ChecklistHandler) Toggle(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierrors.InvalidIDError(c)
	}

	var req models.ChecklistToggleRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.BindError(c)
	}

	item, err := h.checklistService.Toggle(ctx, clientID, c.Param("item"), req.Done)
	if err != nil {
		return apierrors.Respond(c, err)
	}

	return c.JSON(http.StatusOK, item)
}
