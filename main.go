package main

import (
	"os"

	"scoreboard/config"
	"scoreboard/handlers"
	"scoreboard/middleware"
	"scoreboard/models"
	"scoreboard/routes"
	"scoreboard/services"
	"scoreboard/storage"
	"scoreboard/utils/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Errorf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.Game{},
		&models.Player{},
		&models.Score{},
	)
	if err != nil {
		logger.Errorf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Initialize blob storage
	var blobs storage.Store
	switch cfg.StorageDriver {
	case "vercel":
		if cfg.BlobToken == "" {
			logger.Error("BLOB_READ_WRITE_TOKEN is required for the vercel storage driver")
			os.Exit(1)
		}
		if cfg.BlobAPIURL != "" {
			blobs = storage.NewVercelBlobWithURL(cfg.BlobToken, cfg.BlobAPIURL)
		} else {
			blobs = storage.NewVercelBlob(cfg.BlobToken)
		}
	default:
		blobs = storage.NewLocalDisk(cfg.UploadDir, cfg.PublicBaseURL)
	}

	// Initialize services
	gameService := services.NewGameService(db, blobs)
	playerService := services.NewPlayerService(db, blobs)
	scoreService := services.NewScoreService(db)
	overviewService := services.NewOverviewService(scoreService)

	// Initialize handlers
	gameHandler := handlers.NewGameHandler(gameService)
	playerHandler := handlers.NewPlayerHandler(playerService)
	scoreHandler := handlers.NewScoreHandler(scoreService)
	overviewHandler := handlers.NewOverviewHandler(overviewService)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Telemetry())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	// Setup routes
	routes.SetupRoutes(router, gameHandler, playerHandler, scoreHandler, overviewHandler, cfg)

	// Start server
	logger.Infof("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Errorf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
