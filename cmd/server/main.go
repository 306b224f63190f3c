package main

import (
	"context"
	"log"

	"github.com/aitoolhub/backend/internal/config"
	"github.com/aitoolhub/backend/internal/database"
	"github.com/aitoolhub/backend/internal/handler"
	"github.com/aitoolhub/backend/internal/middleware"
	"github.com/aitoolhub/backend/internal/repository"
	"github.com/aitoolhub/backend/internal/service"
	"github.com/aitoolhub/backend/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(!cfg.IsProduction()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Redis backs the rate limiter only; domain state lives in the database.
	redisOpt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Invalid REDIS_URL: %v", err)
	}
	redisClient := redis.NewClient(redisOpt)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}
	defer redisClient.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	toolRepo := repository.NewToolRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	counterRepo := repository.NewCounterRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenLifetime)
	reviewService := service.NewReviewService(reviewRepo, counterRepo)
	toolService := service.NewToolService(toolRepo, reviewRepo, counterRepo, reviewService)
	statsService := service.NewStatsService(userRepo, toolRepo, reviewRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	toolHandler := handler.NewToolHandler(toolService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	adminHandler := handler.NewAdminHandler(reviewService, statsService)

	rateLimiter := middleware.NewRateLimiter(redisClient, middleware.RateLimiterConfig{
		MaxRequests: cfg.RateLimitMaxRequests,
		Window:      cfg.RateLimitWindow,
	})

	router := gin.Default()
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.HSTSMiddleware(cfg.IsProduction()))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Public routes
	auth := router.Group("/api/auth")
	auth.Use(rateLimiter.Middleware())
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
	}

	router.GET("/api/tools", toolHandler.List)
	router.GET("/api/tools/:id", toolHandler.Get)
	router.GET("/api/reviews/:toolId", reviewHandler.ListApproved)

	// Authenticated routes
	authed := router.Group("/api")
	authed.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		authed.GET("/auth/me", authHandler.Me)
		authed.POST("/reviews/:toolId", reviewHandler.Submit)
	}

	// Admin routes
	admin := router.Group("/api")
	admin.Use(middleware.AuthMiddleware(cfg.JWTSecret), middleware.AdminMiddleware())
	{
		admin.POST("/tools", toolHandler.Create)
		admin.PUT("/tools/:id", toolHandler.Update)
		admin.DELETE("/tools/:id", toolHandler.Delete)
		admin.GET("/admin/reviews/pending", adminHandler.PendingReviews)
		admin.PUT("/admin/reviews/:id", adminHandler.SetReviewStatus)
		admin.GET("/admin/stats", adminHandler.Stats)
	}

	logger.Log.Sugar().Infof("Server starting on %s", cfg.ServerPort)
	if err := router.Run(cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
