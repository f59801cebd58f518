package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	apierrors "github.com/rhicrm/rhi-backend/pkg/api/errors"
	"github.com/rhicrm/rhi-backend/pkg/agents"
	"github.com/rhicrm/rhi-backend/pkg/models"
)

// AgentHandler handles agent-related HTTP requests.
type AgentHandler struct {
	agentService *agents.Service
}

// NewAgentHandler creates a new agent handler.
func NewAgentHandler(agentService *agents.Service) *AgentHandler {
	return &AgentHandler{agentService: agentService}
}

// List godoc
// @Summary List agents
// @Tags Agents
// @Produce json
// @Success 200 {array} models.Agent
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/agents [get]
func (h *AgentHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	list, err := h.agentService.List(ctx)
	if err != nil {
		return apierrors.Respond(c, err)
	}

	return c.JSON(http.StatusOK, list)
}

// Get godoc
// @Summary Get an agent
// @Tags Agents
// @Produce json
// @Param id path string true "Agent ID"
// @Success 200 {object} models.Agent
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/agents/{id} [get]
func (h *AgentHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierrors.InvalidIDError(c)
	}

	agent, err := h.agentService.Get(ctx, id)
	if err != nil {
		return apierrors.Respond(c, err)
	}

	return c.JSON(http.StatusOK, agent)
}

// Create godoc
// @Summary Create an agent
// @Tags Agents
// @Accept json
// @Produce json
// @Param request body models.AgentCreateRequest true "Agent details"
// @Success 201 {object} models.Agent
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/agents [post]
func (h *AgentHandler) Create(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	var req models.AgentCreateRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.BindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	agent, err := h.agentService.Create(ctx, req)
	if err != nil {
		return apierrors.Respond(c, err)
	}

	return c.JSON(http.StatusCreated, agent)
}

// Update godoc
// @Summary Update an agent
// @Tags Agents
// @Accept json
// @Produce json
// @Param id path string true "Agent ID"
// @Param request body models.AgentUpdateRequest true "Fields to update"
// @Success 200 {object} models.Agent
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/agents/{id} [patch]
func (h *AgentHandler) Update(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierrors.InvalidIDError(c)
	}

	var req models.AgentUpdateRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.BindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	agent, err := h.agentService.Update(ctx, id, req)
	if err != nil {
		return apierrors.Respond(c, err)
	}

	return c.JSON(http.StatusOK, agent)
}

// Toggle godoc
// @Summary Toggle an agent's active flag
// @Tags Agents
// @Produce json
// @Param id path string true "Agent ID"
// @Success 200 {object} models.Agent
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/agents/{id}/toggle [post]
func (h *AgentHandler) Toggle(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierrors.InvalidIDError(c)
	}

	agent, err := h.agentService.Toggle(ctx, id)
	if err != nil {
		return apierrors.Respond(c, err)
	}

	return c.JSON(http.StatusOK, agent)
}

// Delete godoc
// @Summary Delete an agent
// @Tags Agents
// @Produce json
// @Param id path string true "Agent ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/agents/{id} [delete]
func (h *AgentHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apierrors.InvalidIDError(c)
	}

	if err := h.agentService.Delete(ctx, id); err != nil {
		return apierrors.Respond(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Agent deleted successfully",
	})
}
