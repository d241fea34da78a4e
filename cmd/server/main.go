package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/noelps-git/tastemates/internal/cache"
	"github.com/noelps-git/tastemates/internal/config"
	"github.com/noelps-git/tastemates/internal/database"
	"github.com/noelps-git/tastemates/internal/handlers"
	"github.com/noelps-git/tastemates/internal/middleware"
	"github.com/noelps-git/tastemates/internal/repositories"
	"github.com/noelps-git/tastemates/internal/services"
	"github.com/noelps-git/tastemates/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Initialize logger
	logger.Init()
	defer logger.Sync()

	logger.Info("Starting Tastemates API server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", err)
	}

	// Validate production security settings
	if cfg.AppEnv == "production" {
		if err := cfg.ValidateProductionSecurity(); err != nil {
			logger.Fatal("Production security validation failed", err)
		}
		logger.Info("Production security validation passed")
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", err)
	}

	// Run GORM auto-migration
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis is optional; the unread counter degrades to DB counts without it
	var redisCache *cache.RedisCache
	if cfg.RedisAddr != "" {
		redisCache = cache.NewRedisCache(cfg)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisCache.Ping(ctx); err != nil {
			logger.Warn("Redis unreachable, unread counter cache disabled", "error", err)
			redisCache = nil
		}
		cancel()
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	friendRepo := repositories.NewFriendRepository(db)
	groupRepo := repositories.NewGroupRepository(db)
	messageRepo := repositories.NewMessageRepository(db)
	voteRepo := repositories.NewVoteRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	bucketListRepo := repositories.NewBucketListRepository(db)

	// Fan-out worker pool
	fanout := services.NewFanoutService(notificationRepo, friendRepo, redisCache, cfg.FanoutWorkers, cfg.FanoutQueueSize)

	hm := handlers.NewHandlerManager(
		cfg, db,
		userRepo, friendRepo, groupRepo, messageRepo, voteRepo, notificationRepo, bucketListRepo,
		fanout, redisCache,
	)

	router := mux.NewRouter()
	router.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth(cfg, userRepo))
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerUser, cfg.RateLimitPerIP, time.Minute)
	api.Use(rateLimiter.Middleware)
	hm.RegisterRoutes(api)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      corsHandler.Handler(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server listening", "port", cfg.AppPort, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	fanout.Stop()
	logger.Info("Server stopped")
}
