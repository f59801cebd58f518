package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	apierrors "github.com/rhicrm/rhi-backend/pkg/api/errors"
	"github.com/rhicrm/rhi-backend/pkg/checklist"
	"github.com/rhicrm/rhi-backend/pkg/dashboard"
)

// DashboardHandler handles dashboard aggregation requests.
type DashboardHandler struct {
	dashboardService *dashboard.Service
	checklistService *checklist.Service
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(dashboardService *dashboard.Service, checklistService *checklist.Service) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		checklistService: checklistService,
	}
}

// Summary godoc
// @Summary Dashboard summary
// @Description Tier distribution and average health across all clients
// @Tags Dashboard
// @Produce json
// @Success 200 {object} models.DashboardSummary
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/dashboard/summary [get]
func (h *DashboardHandler) Summary(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	summary, err := h.dashboardService.Summary(ctx)
	if err != nil {
		return apierrors.Respond(c, err)
	}

	return c.JSON(http.StatusOK, summary)
}

// RedQueue godoc
// @Summary Red-tier callback queue
// @Description Red clients ordered most-stale first with their 24h SLA state
// @Tags Dashboard
// @Produce json
// @Success 200 {object} models.RedQueueResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/dashboard/red-queue [get]
func (h *DashboardHandler) RedQueue(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	queue, err := h.dashboardService.RedQueue(ctx)
	if err != nil {
		return apierrors.Respond(c, err)
	}

	return c.JSON(http.StatusOK, queue)
}

// Coverage godoc
// @Summary Checklist coverage rollup
// @Description Per-item completion percentage across all clients
// @Tags Dashboard
// @Produce json
// @Success 200 {array} models.CoverageEntry
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/dashboard/coverage [get]
func (h *DashboardHandler) Coverage(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	entries, err := h.checklistService.Coverage(ctx)
	if err != nil {
		return apierrors.Respond(c, err)
	}

	return c.JSON(http.StatusOK, entries)
}
