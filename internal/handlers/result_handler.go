package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/eventsapi/internal/models"
	"github.com/campushub/eventsapi/internal/services"
)

func RecordResult(rs *services.ResultService, es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			return
		}
		eventID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var req models.RecordResultRequest
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
			c.JSON(http.StatusForbidden, models.ErrorResponse("only the organizer can record results"))
			return
		}

		result, err := rs.RecordResult(c.Request.Context(), eventID, req)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(result, "Result recorded"))
	}
}

func AmendResult(rs *services.ResultService, es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			return
		}
		eventID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		participantID, ok := parseIDParam(c, "participant_id")
		if !ok {
			return
		}

		var req models.AmendResultRequest
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
			c.JSON(http.StatusForbidden, models.ErrorResponse("only the organizer can amend results"))
			return
		}

		result, err := rs.AmendResult(c.Request.Context(), eventID, participantID, req)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(result, "Result updated"))
	}
}

func ListEventResults(rs *services.ResultService) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		results, err := rs.ListEventResults(c.Request.Context(), eventID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(results, ""))
	}
}
