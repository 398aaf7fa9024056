package handler

import (
	"errors"
	"net/http"

	"mentor-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// handleServiceError maps service errors to HTTP statuses. Downstream
// detail (provider, store) is logged here and never sent to the caller.
func handleServiceError(c *gin.Context, logger *zap.Logger, err error) {
	var statusCode int
	var resp models.ErrorResponse

	switch {
	case errors.Is(err, models.ErrMenteeNotFound), errors.Is(err, models.ErrNotFound):
		statusCode = http.StatusNotFound
		resp = models.ErrorResponse{Error: "Mentee not found"}
	case errors.Is(err, models.ErrInvalidInput), errors.Is(err, models.ErrBadRequest):
		statusCode = http.StatusBadRequest
		resp = models.ErrorResponse{Error: err.Error()}
	case errors.Is(err, models.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		resp = models.ErrorResponse{Error: "Unauthorized"}
	default:
		logger.Error("Request failed with internal error", zap.Error(err))
		statusCode = http.StatusInternalServerError
		resp = models.ErrorResponse{Error: "Internal server error"}
	}

	c.AbortWithStatusJSON(statusCode, resp)
}
