package main

import (
	"context"
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/MohamedHisham20/media-sharing-platform/internal/router"
	"github.com/MohamedHisham20/media-sharing-platform/internal/validators"
	"github.com/MohamedHisham20/media-sharing-platform/pkg/cloudinary"
	"github.com/MohamedHisham20/media-sharing-platform/pkg/config"
	"github.com/MohamedHisham20/media-sharing-platform/pkg/firebase"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB()

	// Initialize the storage provider
	storage, err := cloudinary.New(cfg.Cloudinary)
	if err != nil {
		log.Fatalf("Failed to initialize Cloudinary: %v", err)
	}

	// Firebase social sign-in is optional; enabled only when credentials
	// are configured.
	var firebaseAuthClient *auth.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		firebaseAuthClient = firebaseApp.AuthClient
	} else {
		log.Println("Firebase credentials not configured, social sign-in disabled.")
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Validator
	e.Validator = validators.NewValidator()

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Mongo, storage, firebaseAuthClient, cfg)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
