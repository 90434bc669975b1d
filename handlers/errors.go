package handlers

import (
	"errors"
	"net/http"

	"glowslots/models"
	"glowslots/services/booking"
	"glowslots/services/travel"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps engine errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, booking.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, booking.ErrNotFound), errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, booking.ErrPastDate),
		errors.Is(err, booking.ErrAdvanceWindowExceeded),
		errors.Is(err, travel.ErrOutOfRange):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err with its mapped status. Internal errors are logged and
// their details withheld.
func respondError(c *gin.Context, action string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		getLogger(c).Error(action+" failed", zap.Error(err))
		c.JSON(status, gin.H{"error": action + " failed", "message": "Please try again later"})
		return
	}
	getLogger(c).Info(action+" rejected", zap.Int("status", status), zap.Error(err))
	c.JSON(status, gin.H{"error": action + " rejected", "message": err.Error()})
}

// errorMessage renders a per-item error for batch responses.
func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	if statusFor(err) == http.StatusInternalServerError {
		return "estimate unavailable"
	}
	return err.Error()
}
