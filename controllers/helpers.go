// File: /controllers/helpers.go
package controllers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"fleetexpense-api/middleware"
	"fleetexpense-api/models"
	"fleetexpense-api/services"
	"fleetexpense-api/utils"

	"github.com/gin-gonic/gin"
)

// DateWindowRequest is embedded by request bodies that accept an optional
// date window.
type DateWindowRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func (r DateWindowRequest) window() (*models.DateRange, error) {
	return utils.ParseDateRange(r.StartDate, r.EndDate)
}

func callerFrom(c *gin.Context) services.Caller {
	return services.Caller{
		ID:    c.GetString(middleware.ContextUserID),
		Email: c.GetString(middleware.ContextEmail),
		Role:  models.Role(c.GetString(middleware.ContextRole)),
	}
}

// bindOptionalJSON binds the body when there is one. An empty body, sized
// or chunked, leaves req untouched.
func bindOptionalJSON(c *gin.Context, req interface{}) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// handleServiceError maps service errors onto status codes. Unexpected
// errors are logged with attrs and answered with a generic message.
func handleServiceError(c *gin.Context, err error, message string, attrs ...any) {
	var validationError *services.ValidationError

	switch {
	case errors.As(err, &validationError):
		utils.SendValidationError(c, validationError.Msg)
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.SendError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, services.ErrForbidden):
		utils.SendError(c, http.StatusForbidden, "Access denied")
	case errors.Is(err, services.ErrScopeNotFound):
		utils.SendErrorMessage(c, http.StatusNotFound, "Not found", err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.SendError(c, http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrConflict):
		utils.SendErrorMessage(c, http.StatusConflict, "Conflict", err.Error())
	default:
		slog.ErrorContext(c.Request.Context(), message, append(attrs, "error", err)...)
		utils.SendError(c, http.StatusInternalServerError, message)
	}
}
