package api

import (
	"errors"
	"net/http"

	"github.com/AnasGabbadi/fitness-tracker-api/internal/service"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform response shape of the API.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
	Count   *int        `json:"count,omitempty"`
}

func respondData(c *gin.Context, code int, data interface{}) {
	c.JSON(code, Envelope{Success: true, Data: data})
}

func respondList(c *gin.Context, code int, data interface{}, count int) {
	c.JSON(code, Envelope{Success: true, Data: data, Count: &count})
}

func respondMessage(c *gin.Context, code int, message string) {
	c.JSON(code, Envelope{Success: true, Message: message})
}

func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, Envelope{Success: false, Message: message})
}

func abortWithValidationError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Envelope{
		Success: false,
		Message: "Validation error",
		Errors:  []string{err.Error()},
	})
}

// respondServiceError maps service sentinel errors onto the HTTP taxonomy:
// 400 validation, 401 authentication, 403 wrong owner, 404 missing (or, for
// exercises, cross-owner), 500 fallback carrying the error's own message.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidationFailed),
		errors.Is(err, service.ErrEmailTaken):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAuthenticationFailed):
		abortWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrWorkoutAccessDenied),
		errors.Is(err, service.ErrLogAccessDenied),
		errors.Is(err, service.ErrProgressAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrWorkoutNotFound),
		errors.Is(err, service.ErrLogNotFound),
		errors.Is(err, service.ErrProgressNotFound),
		errors.Is(err, service.ErrUserNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, err.Error())
	}
}
