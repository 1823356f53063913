package router

import (
	"context"
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/MohamedHisham20/media-sharing-platform/internal/handlers"
	"github.com/MohamedHisham20/media-sharing-platform/internal/middleware"
	"github.com/MohamedHisham20/media-sharing-platform/internal/repositories"
	"github.com/MohamedHisham20/media-sharing-platform/internal/services"
	"github.com/MohamedHisham20/media-sharing-platform/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies.
// firebaseAuthClient may be nil; social sign-in is then not exposed.
func SetupRoutes(e *echo.Echo, mgClient *mongo.Client, storage services.StorageProvider, firebaseAuthClient *auth.Client, cfg *config.Config) {
	db := mgClient.Database(cfg.MongoDatabase)

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewMongoUserRepository(db)
	mediaRepo := repositories.NewMongoMediaRepository(db)

	if err := userRepo.EnsureIndexes(context.Background()); err != nil {
		log.Fatalf("Failed to create user indexes: %v", err)
	}

	// --- Initialize Services ---
	reactionService := services.NewReactionService(userRepo, mediaRepo)
	uploadService := services.NewUploadService(userRepo, mediaRepo, storage)

	// --- Public routes ---
	users := e.Group("/api/users")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(users)
	log.Println("Auth routes configured.")

	userHandler := handlers.NewUserHandler(userRepo, mediaRepo)
	userHandler.RegisterPublicUserRoutes(users)

	media := e.Group("/api/media")
	mediaHandler := handlers.NewMediaHandler(mediaRepo, userRepo)
	mediaHandler.RegisterMediaRoutes(media)
	log.Println("Media browsing routes configured.")

	// --- Protected routes (require JWT authentication) ---
	jwtAuth := middleware.JWTAuthMiddleware(cfg.JWTSecret)

	usersAuth := e.Group("/api/users", jwtAuth)
	userHandler.RegisterProtectedUserRoutes(usersAuth)
	log.Println("User profile routes configured.")

	mediaAuth := e.Group("/api/media", jwtAuth)

	uploadHandler := handlers.NewUploadHandler(uploadService)
	uploadHandler.RegisterUploadRoutes(mediaAuth)
	log.Println("Upload routes configured.")

	reactionHandler := handlers.NewReactionHandler(reactionService)
	reactionHandler.RegisterReactionRoutes(mediaAuth)
	log.Println("Reaction routes configured.")

	log.Println("All routes configured.")
}
