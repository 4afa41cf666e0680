package routes

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/campushub/eventsapi/internal/container"
	"github.com/campushub/eventsapi/internal/handlers"
	"github.com/campushub/eventsapi/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(c *container.Container, allowedOrigins string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(allowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(c.Logger))
	r.Use(middleware.ErrorHandler(c.Logger))
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(200, gin.H{
				"status":  "OK",
				"service": "campushub-events-api",
			})
		})

		// Public reads
		v1.GET("/events", handlers.ListEvents(c.EventService))
		v1.GET("/events/:id", handlers.GetEvent(c.EventService))
		v1.GET("/events/:id/results", handlers.ListEventResults(c.ResultService))
		v1.GET("/leaderboard", handlers.GetLeaderboard(c.LeaderboardService))
	}

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(c.Logger))

	eventRoutes := protected.Group("/events")
	{
		eventRoutes.POST("/", handlers.CreateEvent(c.EventService))
		eventRoutes.PATCH("/:id", handlers.UpdateEvent(c.EventService))
		eventRoutes.DELETE("/:id", handlers.DeleteEvent(c.EventService))

		eventRoutes.POST("/:id/registrations", handlers.Register(c.RegistrationService))
		eventRoutes.DELETE("/:id/registrations", handlers.CancelRegistration(c.RegistrationService))
		eventRoutes.POST("/:id/attendance", handlers.MarkAttendance(c.RegistrationService, c.EventService))
		eventRoutes.GET("/:id/registrations", handlers.ListEventRegistrations(c.RegistrationService, c.EventService))

		eventRoutes.POST("/:id/results", handlers.RecordResult(c.ResultService, c.EventService))
		eventRoutes.PATCH("/:id/results/:participant_id", handlers.AmendResult(c.ResultService, c.EventService))
	}

	userRoutes := protected.Group("/users")
	{
		userRoutes.GET("/me", handlers.GetProfile(c.UserService))
		userRoutes.PATCH("/me", handlers.UpdateProfile(c.UserService))
		userRoutes.GET("/me/registrations", handlers.MyRegistrations(c.RegistrationService))
	}

	return r
}
