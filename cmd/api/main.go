package main

import (
	"context"
	"fmt"
	"os"

	"civicpulse/internal/ai"
	"civicpulse/internal/cache"
	"civicpulse/internal/config"
	"civicpulse/internal/database"
	"civicpulse/internal/handlers"
	"civicpulse/internal/logger"
	"civicpulse/internal/middleware"
	"civicpulse/internal/services"
	"civicpulse/internal/storage"
	"civicpulse/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "civicpulse/internal/docs" // Import swagger docs
)

// @title           CivicPulse API
// @version         1.0
// @description     CivicPulse lets citizens file municipal grievances, admins assign them to department officers, and everyone track them to resolution.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()
	ctx := context.Background()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Analytics cache
	var analyticsCache cache.Cache = cache.Noop{}
	if appConfig.RedisAddr != "" {
		redisCache, err := cache.NewRedis(ctx, appConfig.RedisAddr, appConfig.RedisPassword)
		if err != nil {
			log.Warnw("redis unavailable, analytics will not be cached", "addr", appConfig.RedisAddr, "error", err)
		} else {
			defer redisCache.Close()
			analyticsCache = redisCache
		}
	}

	// Image storage
	images, err := newImageStore(appConfig)
	if err != nil {
		return fmt.Errorf("failed to initialise image storage: %w", err)
	}

	// AI assistant
	var assistant ai.Assistant = ai.Noop{}
	if appConfig.GeminiAPIKey != "" {
		gemini, err := ai.NewGemini(ctx, appConfig.GeminiAPIKey, appConfig.GeminiModel)
		if err != nil {
			log.Warnw("gemini client unavailable, AI features disabled", "error", err)
		} else {
			assistant = ai.NewService(gemini)
		}
	}

	// Initialize services
	db := dbManager.DB()
	auditService := services.NewAuditService(db)
	userService := services.NewUserService(db, auditService)
	analyticsService := services.NewAnalyticsService(db, analyticsCache, services.AnalyticsOptions{
		RedZoneThreshold: appConfig.RedZoneThreshold,
		CacheTTL:         appConfig.AnalyticsCacheTTL,
	})
	grievanceService := services.NewGrievanceService(db, auditService, analyticsService)

	if appConfig.SeedDefaultUsers {
		if err := userService.SeedDefaultUsers(); err != nil {
			return fmt.Errorf("failed to seed default users: %w", err)
		}
	}

	validator.Register()

	// Initialize handlers
	routes := &handlers.Router{
		Auth:      handlers.NewAuthHandler(userService, auditService),
		Users:     handlers.NewUserHandler(userService, analyticsService),
		Grievance: handlers.NewGrievanceHandler(grievanceService, auditService, images, assistant, appConfig.UploadMaxBytes),
		Analytics: handlers.NewAnalyticsHandler(analyticsService),
		AI:        handlers.NewAIHandler(assistant),
		Audit:     handlers.NewAuditHandler(auditService),
	}

	// Initialize Gin router
	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RequestLogging())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(appConfig.CORSAllowedOrigins))
	router.Use(middleware.ErrorHandler())
	router.MaxMultipartMemory = appConfig.UploadMaxBytes + 1<<20
	router.NoRoute(middleware.NotFound())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Locally stored uploads
	if appConfig.S3Bucket == "" {
		router.Static(storage.LocalURLPrefix, appConfig.UploadDir)
	}

	routes.Register(router.Group("/api"))

	log.Infof("Starting CivicPulse backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}

// newImageStore uploads to S3 when a bucket is configured and to disk otherwise.
func newImageStore(cfg *config.Config) (storage.ImageStore, error) {
	if cfg.S3Bucket != "" {
		s3Store, err := storage.NewS3(storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			return nil, err
		}
		return s3Store, nil
	}
	local, err := storage.NewLocal(cfg.UploadDir)
	if err != nil {
		return nil, err
	}
	return local, nil
}
