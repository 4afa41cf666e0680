package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campushub/eventsapi/internal/models"
	"github.com/campushub/eventsapi/internal/services"
)

func Register(rs *services.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			return
		}
		eventID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		participantID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid user ID in token"))
			return
		}

		reg, err := rs.Register(c.Request.Context(), eventID, participantID)
		if err != nil {
			abortWithError(c, err)
			return
		}

		msg := "Registration confirmed"
		if reg.Status == models.RegistrationWaitlisted {
			msg = "Added to waitlist"
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(reg, msg))
	}
}

func CancelRegistration(rs *services.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			return
		}
		eventID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		participantID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid user ID in token"))
			return
		}

		reg, err := rs.Cancel(c.Request.Context(), eventID, participantID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(reg, "Registration cancelled"))
	}
}

// MarkAttendance lets the event organizer record that a confirmed
// participant showed up.
func MarkAttendance(rs *services.RegistrationService, es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			return
		}
		eventID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var req struct {
			ParticipantID uuid.UUID `json:"participant_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		event, err := es.GetEvent(c.Request.Context(), eventID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		if !claims.IsOwner(event.OrganizerID.String()) && !claims.IsAdmin() {
			c.JSON(http.StatusForbidden, models.ErrorResponse("only the organizer can mark attendance"))
			return
		}

		reg, err := rs.MarkAttendance(c.Request.Context(), eventID, req.ParticipantID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(reg, "Attendance marked"))
	}
}

func ListEventRegistrations(rs *services.RegistrationService, es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			return
		}
		eventID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		event, err := es.GetEvent(c.Request.Context(), eventID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		if !claims.IsOwner(event.OrganizerID.String()) && !claims.IsAdmin() {
			c.JSON(http.StatusForbidden, models.ErrorResponse("only the organizer can view the roster"))
			return
		}

		regs, err := rs.ListEventRegistrations(c.Request.Context(), eventID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(regs, ""))
	}
}

func MyRegistrations(rs *services.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			return
		}
		participantID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid user ID in token"))
			return
		}

		regs, err := rs.ListParticipantRegistrations(c.Request.Context(), participantID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(regs, ""))
	}
}
