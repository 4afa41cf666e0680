package container

import (
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campushub/eventsapi/internal/models"
	"github.com/campushub/eventsapi/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Logger        *slog.Logger
	Cloudinary    *cloudinary.Cloudinary
	MongoDBClient *mongo.Client

	EventService        *services.EventService
	RegistrationService *services.RegistrationService
	ResultService       *services.ResultService
	LeaderboardService  *services.LeaderboardService
	UserService         *services.UserService
}

// NewContainer creates a new dependency injection container
func NewContainer(logger *slog.Logger, cld *cloudinary.Cloudinary, mongoClient *mongo.Client) *Container {
	repo := models.NewMongodbRepo(mongoClient)
	notifier := services.NewOutboxNotifier(repo, logger)

	return &Container{
		Logger:              logger,
		Cloudinary:          cld,
		MongoDBClient:       mongoClient,
		EventService:        services.NewEventService(repo, cld, logger),
		RegistrationService: services.NewRegistrationService(repo, repo, notifier, logger),
		ResultService:       services.NewResultService(repo, repo, repo, notifier, logger),
		LeaderboardService:  services.NewLeaderboardService(repo, repo, logger),
		UserService:         services.NewUserService(repo),
	}
}
