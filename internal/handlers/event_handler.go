package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campushub/eventsapi/internal/helpers"
	"github.com/campushub/eventsapi/internal/models"
	"github.com/campushub/eventsapi/internal/services"
)

// eventView decorates an event with its derived status for responses.
type eventView struct {
	*models.Event
	Status models.EventStatus `json:"status"`
}

func viewOf(e *models.Event, now time.Time) eventView {
	return eventView{Event: e, Status: e.Status(now)}
}

func CreateEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			return
		}
		if !claims.IsOrganizer() && !claims.IsAdmin() {
			c.JSON(http.StatusForbidden, models.ErrorResponse("only organizers can create events"))
			return
		}

		var req models.CreateEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		organizerID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid user ID in token"))
			return
		}

		event, err := es.CreateEvent(c.Request.Context(), req, organizerID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(viewOf(event, time.Now().UTC()), "Event created successfully"))
	}
}

func UpdateEvent(es *services.EventService) gin.HandlerFunc {
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
			c.JSON(http.StatusForbidden, models.ErrorResponse("only the organizer can update this event"))
			return
		}

		var req models.UpdateEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		updated, err := es.UpdateEvent(c.Request.Context(), eventID, req)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(viewOf(updated, time.Now().UTC()), "Event updated successfully"))
	}
}

func DeleteEvent(es *services.EventService) gin.HandlerFunc {
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
			c.JSON(http.StatusForbidden, models.ErrorResponse("only the organizer or an admin can delete this event"))
			return
		}

		if err := es.DeleteEvent(c.Request.Context(), eventID); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Event deleted successfully"))
	}
}

func GetEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		event, err := es.GetEvent(c.Request.Context(), eventID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(viewOf(event, time.Now().UTC()), ""))
	}
}

func ListEvents(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		offsetInt, limitInt, ok := parsePagination(c)
		if !ok {
			return
		}

		filter := models.EventListFilter{
			Category:  c.Query("category"),
			VenueName: c.Query("venue"),
		}
		if organizer := c.Query("organizer"); organizer != "" {
			id, err := uuid.Parse(organizer)
			if err != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid organizer ID"))
				return
			}
			filter.OrganizerID = id
		}
		if status := models.EventStatus(c.Query("status")); status != "" {
			switch status {
			case models.StatusUpcoming, models.StatusOngoing, models.StatusCompleted:
				filter.Status = status
			default:
				c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid status filter"))
				return
			}
		}

		events, total, err := es.ListEvents(c.Request.Context(), filter, offsetInt, limitInt)
		if err != nil {
			abortWithError(c, err)
			return
		}

		now := time.Now().UTC()
		views := make([]eventView, 0, len(events))
		for _, e := range events {
			views = append(views, viewOf(e, now))
		}

		page := (offsetInt / limitInt) + 1
		c.JSON(http.StatusOK, models.PaginatedResponse(views, page, limitInt, total))
	}
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	raw := helpers.StringTrim(c.Param(name))
	if raw == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(name+" is required"))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid "+name+" format"))
		return uuid.Nil, false
	}
	return id, true
}

func parsePagination(c *gin.Context) (offset, limit int, ok bool) {
	limitInt, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limitInt <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid limit parameter"))
		return 0, 0, false
	}
	offsetInt, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offsetInt < 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid offset parameter"))
		return 0, 0, false
	}
	return offsetInt, limitInt, true
}
