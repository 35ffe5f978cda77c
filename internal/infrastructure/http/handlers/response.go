// Package handlers provides HTTP handlers for the Chef Aid API
package handlers

import (
	"errors"
	"io"
	"net/http"

	apperrors "github.com/chefaid/chefaid/pkg/errors"
	"github.com/gin-gonic/gin"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// fail hands err to the error middleware, which renders the envelope
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// bindJSON decodes the request body into target. An empty body leaves
// target untouched.
func bindJSON(c *gin.Context, target interface{}) error {
	err := c.ShouldBindJSON(target)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return bodyError(err)
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperrors.NewBadRequestError("Request too large")
	}
	return apperrors.NewBadRequestError("Invalid request body").WithCause(err)
}
