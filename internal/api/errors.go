package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"catclassifier/internal/predictor"
)

// ErrorResponse mirrors the {"detail": ...} body returned on every failure.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// MapError maps service errors to an HTTP status and a caller-facing message.
func MapError(err error) (int, string) {
	switch {
	case errors.Is(err, predictor.ErrEmptyText):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, predictor.ErrInvalidVersion):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, predictor.ErrModelNotLoaded):
		return http.StatusServiceUnavailable, "Model not loaded. Run the trainer first."
	case errors.Is(err, predictor.ErrModelLoad):
		return http.StatusInternalServerError, err.Error()
	case errors.Is(err, predictor.ErrPrediction):
		return http.StatusInternalServerError, err.Error()
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func respondError(c *gin.Context, err error) {
	status, detail := MapError(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorResponse{Detail: detail})
}
