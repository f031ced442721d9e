package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tesseract-hub/property-service/internal/documents"
	"github.com/tesseract-hub/property-service/internal/models"
)

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, models.APIResponse{
		Success: true,
		Data:    data,
		Source:  models.SourceLocal,
	})
}

func respondSource(c *gin.Context, data interface{}, source string) {
	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    data,
		Source:  source,
	})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, models.APIResponse{Success: false, Error: message})
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound), errors.Is(err, documents.ErrPayloadNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrPropertyInUse),
		errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrAlreadyConverted),
		errors.Is(err, models.ErrDuplicateID):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error envelope. Internal errors are logged and their detail hidden.
func respondError(c *gin.Context, logger *logrus.Logger, err error, message string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.WithError(err).WithField("path", c.Request.URL.Path).Error(message)
		c.JSON(status, models.APIResponse{Success: false, Error: message})
		return
	}
	_ = c.Error(err)
	c.JSON(status, models.APIResponse{Success: false, Error: err.Error()})
}
