package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/eventsapi/internal/models"
	"github.com/campushub/eventsapi/internal/services"
)

func GetLeaderboard(ls *services.LeaderboardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := models.LeaderboardFilter{
			Category: models.ResultCategory(c.Query("category")),
			Window:   c.Query("window"),
		}

		entries, err := ls.Leaderboard(c.Request.Context(), filter)
		if err != nil {
			abortWithError(c, err)
			return
		}
		if entries == nil {
			entries = []*models.LeaderboardEntry{}
		}
		c.JSON(http.StatusOK, models.SuccessResponse(entries, ""))
	}
}
