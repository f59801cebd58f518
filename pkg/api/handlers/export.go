package handlers

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	apierrors "github.com/rhicrm/rhi-backend/pkg/api/errors"
	"github.com/rhicrm/rhi-backend/pkg/export"
)

// ExportHandler handles export requests.
type ExportHandler struct {
	exportService *export.Service
}

// NewExportHandler creates a new export handler.
func NewExportHandler(exportService *export.Service) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportClients godoc
// @Summary Export clients
// @Description Generate and download a CSV or Excel snapshot of all clients
// @Tags Exports
// @Produce application/octet-stream
// @Param format query string false "File format: csv (default) or excel"
// @Param tier query string false "Tier filter (Green, Amber, Red)"
// @Success 200 {file} binary
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/exports/clients [get]
func (h *ExportHandler) ExportClients(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	format := export.Format(c.QueryParam("format"))
	if format == "" {
		format = export.FormatCSV
	}

	result, err := h.exportService.ExportClients(ctx, format, c.QueryParam("tier"))
	if err != nil {
		return apierrors.Respond(c, err)
	}

	return c.Attachment(result.FilePath, result.FileName)
}
