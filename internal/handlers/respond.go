package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/eventsapi/internal/helpers"
	"github.com/campushub/eventsapi/internal/models"
)

// statusForError maps domain errors to HTTP statuses so every handler
// answers consistently.
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidSchedule),
		errors.Is(err, models.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrVenueConflict),
		errors.Is(err, models.ErrAlreadyRegistered),
		errors.Is(err, models.ErrDuplicateResult),
		errors.Is(err, models.ErrEventFull),
		errors.Is(err, models.ErrRegistrationClosed):
		return http.StatusConflict
	case errors.Is(err, models.ErrNotRegistered),
		errors.Is(err, models.ErrNotConfirmed),
		errors.Is(err, models.ErrMissingPrize):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
}

// currentClaims pulls the authenticated identity the auth middleware stored.
func currentClaims(c *gin.Context) (*helpers.Claims, bool) {
	v, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
		return nil, false
	}
	claims, ok := v.(*helpers.Claims)
	if !ok {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse("invalid user claims"))
		return nil, false
	}
	return claims, true
}
