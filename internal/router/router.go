package router

import (
	"github.com/archinet-app/backend/internal/handlers"
	"github.com/archinet-app/backend/internal/middleware"
	"github.com/archinet-app/backend/internal/models"
	"github.com/archinet-app/backend/internal/repositories"
	"github.com/archinet-app/backend/pkg/config"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// SetupRoutes migrates the schema, wires repositories to handlers, and
// registers every route group.
func SetupRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.BlockedUser{},
		&models.MutedUser{},
		&models.Like{},
		&models.Comment{},
		&models.SavedItem{},
		&models.Message{},
		&models.MessageLike{},
		&models.Notification{},
		&models.Post{},
		&models.Project{},
		&models.Job{},
		&models.JobApplication{},
		&models.ResearchPaper{},
	); err != nil {
		return err
	}

	userRepo := repositories.NewPostgresUserRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	relationshipRepo := repositories.NewPostgresRelationshipRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	savedRepo := repositories.NewPostgresSavedItemRepository(db)
	messageRepo := repositories.NewPostgresMessageRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	projectRepo := repositories.NewPostgresProjectRepository(db)
	jobRepo := repositories.NewPostgresJobRepository(db)
	researchRepo := repositories.NewPostgresResearchRepository(db)

	resolver := &handlers.ContentResolver{
		PostRepo:     postRepo,
		ProjectRepo:  projectRepo,
		ResearchRepo: researchRepo,
		CommentRepo:  commentRepo,
	}

	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	userHandler := handlers.NewUserHandler(userRepo, followRepo)
	followHandler := handlers.NewFollowHandler(followRepo, userRepo, relationshipRepo, notificationRepo)
	relationshipHandler := handlers.NewRelationshipHandler(relationshipRepo, userRepo)
	likeHandler := handlers.NewLikeHandler(likeRepo, userRepo, notificationRepo, resolver)
	commentHandler := handlers.NewCommentHandler(commentRepo, userRepo, notificationRepo)
	savedHandler := handlers.NewSavedItemHandler(savedRepo)
	messageHandler := handlers.NewMessageHandler(messageRepo, userRepo, relationshipRepo)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	postHandler := handlers.NewPostHandler(postRepo, userRepo)
	feedHandler := handlers.NewFeedHandler(postRepo, userRepo, followRepo, relationshipRepo, likeRepo, savedRepo)
	projectHandler := handlers.NewProjectHandler(projectRepo)
	jobHandler := handlers.NewJobHandler(jobRepo)
	researchHandler := handlers.NewResearchHandler(researchRepo, userRepo, notificationRepo)

	e.GET("/health", handlers.HealthCheck)

	auth := e.Group("/api/v1/auth")
	authHandler.RegisterAuthRoutes(auth)

	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	authHandler.RegisterMeRoute(api)
	userHandler.RegisterUserRoutes(api)
	followHandler.RegisterFollowRoutes(api)
	relationshipHandler.RegisterRelationshipRoutes(api)
	likeHandler.RegisterLikeRoutes(api)
	commentHandler.RegisterCommentRoutes(api)
	savedHandler.RegisterSavedItemRoutes(api)
	messageHandler.RegisterMessageRoutes(api)
	notificationHandler.RegisterNotificationRoutes(api)
	postHandler.RegisterPostRoutes(api)
	feedHandler.RegisterFeedRoutes(api)
	projectHandler.RegisterProjectRoutes(api)
	jobHandler.RegisterJobRoutes(api)
	researchHandler.RegisterResearchRoutes(api)

	return nil
}
