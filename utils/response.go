// File: /utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func SendError(c *gin.Context, status int, err string) {
	SendErrorMessage(c, status, err, "")
}

// SendErrorMessage writes an error with a client-safe detail message.
func SendErrorMessage(c *gin.Context, status int, err, message string) {
	c.JSON(status, ErrorResponse{
		Error:   err,
		Message: message,
		Code:    status,
	})
}

func SendValidationError(c *gin.Context, message string) {
	SendErrorMessage(c, http.StatusBadRequest, "Validation failed", message)
}

func SendSuccess(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Message: message,
		Data:    data,
	})
}
