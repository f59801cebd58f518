package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	apierrors "github.com/rhicrm/rhi-backend/pkg/api/errors"
	"github.com/rhicrm/rhi-backend/pkg/models"
	"github.com/rhicrm/rhi-backend/pkg/phone"
)

// PhoneHandler handles phone validation requests.
type PhoneHandler struct {
	defaultRegion string
}

// NewPhoneHandler creates a new phone handler.
func NewPhoneHandler(defaultRegion string) *PhoneHandler {
	if defaultRegion == "" {
		defaultRegion = phone.DefaultRegion
	}
	return &PhoneHandler{defaultRegion: defaultRegion}
}

// Validate godoc
// @Summary Validate a phone number
// @Description Parse a phone number and return its normalized forms
// @Tags Phone
// @Produce json
// @Param number query string true "Phone number"
// @Param region query string false "Region hint (default PK)"
// @Success 200 {object} phone.ValidationResult
// @Failure 400 {object} models.ErrorResponse
// @Router /api/v1/phone/validate [get]
func (h *PhoneHandler) Validate(c echo.Context) error {
	number := c.QueryParam("number")
	if number == "" {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: "number query parameter is required",
		})
	}

	region := c.QueryParam("region")
	if region == "" {
		region = h.defaultRegion
	}

	result, err := phone.Validate(number, region)
	if err != nil {
		return apierrors.ValidationError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}
