// Package errors maps service-layer errors onto the uniform JSON error body.
// Internal details are logged, never exposed.
package errors

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rhicrm/rhi-backend/pkg/domain"
	"github.com/rhicrm/rhi-backend/pkg/models"
)

// Respond translates a service error into the matching HTTP response. Every
// handler funnels its service errors through here so status mapping lives in
// one place.
func Respond(c echo.Context, err error) error {
	var de *domain.DomainError
	switch domain.GetErrorCode(err) {
	case domain.ErrCodeNotFound:
		de = asDomain(err)
		return c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: de.Message,
		})
	case domain.ErrCodeValidation:
		de = asDomain(err)
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: de.Message,
		})
	case domain.ErrCodeConflict:
		de = asDomain(err)
		return c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "conflict",
			Message: de.Message,
		})
	case domain.ErrCodeBadRequest:
		de = asDomain(err)
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: de.Message,
		})
	default:
		return InternalError(c, err)
	}
}

func asDomain(err error) *domain.DomainError {
	if de, ok := err.(*domain.DomainError); ok {
		return de
	}
	return &domain.DomainError{Code: domain.ErrCodeInternal, Message: err.Error()}
}

// ValidationError returns a generic validation error without exposing
// internal details.
func ValidationError(c echo.Context, err error) error {
	log.Printf("[VALIDATION ERROR] Path: %s, Error: %v", c.Request().URL.Path, err)

	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "validation_error",
		Message: "Invalid request data. Please check your input and try again.",
	})
}

// BindError returns a generic malformed-body error.
func BindError(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "invalid_request",
		Message: "Invalid request body",
	})
}

// InvalidIDError returns the response for an unparseable path ID.
func InvalidIDError(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "invalid_id",
		Message: "Invalid ID: must be a UUID",
	})
}

// InternalError returns a generic internal server error.
func InternalError(c echo.Context, err error) error {
	log.Printf("[INTERNAL ERROR] Path: %s, Error: %v", c.Request().URL.Path, err)

	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred. Please try again later.",
	})
}
