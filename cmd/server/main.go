package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/mdcampos/wants-api/internal/config"
	"github.com/mdcampos/wants-api/internal/database"
	"github.com/mdcampos/wants-api/internal/handlers"
	"github.com/mdcampos/wants-api/internal/repository"
	"github.com/mdcampos/wants-api/internal/services"
	s3storage "github.com/mdcampos/wants-api/internal/storage/s3"
	"github.com/mdcampos/wants-api/pkg/logger"
	"github.com/mdcampos/wants-api/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// Object storage for want images
	imageStorage, err := s3storage.New(s3storage.Config{
		Region:          cfg.S3Region,
		Bucket:          cfg.S3Bucket,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		Endpoint:        cfg.S3Endpoint,
		UsePathStyle:    cfg.S3UsePathStyle,
		PublicBaseURL:   cfg.S3PublicBaseURL,
	})
	if err != nil {
		log.Fatalf("Object storage error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	wantRepo := repository.NewWantRepository(db)

	// --- Services ---
	userService := services.NewUserService(userRepo)
	wantService := services.NewWantService(wantRepo, userService, imageStorage)

	// --- Handlers ---
	wantHandler := handlers.NewWantHandler(wantService)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Want routes (authenticated)
	protectedWantRoutes := router.PathPrefix("/wants").Subrouter()
	protectedWantRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	protectedWantRoutes.HandleFunc("", wantHandler.CreateWantHandler).Methods("POST")
	protectedWantRoutes.HandleFunc("/{id}", wantHandler.GetWantHandler).Methods("GET")
	protectedWantRoutes.HandleFunc("/{id}", wantHandler.UpdateWantHandler).Methods("PATCH")
	protectedWantRoutes.HandleFunc("/{id}/image", wantHandler.UploadWantImageHandler).Methods("POST")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Start the HTTP server
	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // adjust to frontend origin
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
