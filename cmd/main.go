package main

import (
	"context"
	"fmt"
	"os"

	"github.com/habitloop/habitloop-backend/internal/app"
	"github.com/habitloop/habitloop-backend/internal/db"
	"github.com/habitloop/habitloop-backend/internal/handlers"
	"github.com/habitloop/habitloop-backend/internal/middleware"
	"github.com/habitloop/habitloop-backend/internal/observability"
	"github.com/habitloop/habitloop-backend/internal/pkg/logger"
	"github.com/habitloop/habitloop-backend/internal/repos"
	"github.com/habitloop/habitloop-backend/internal/server"
	"github.com/habitloop/habitloop-backend/internal/services"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	cfg := app.LoadConfig(log)

	// Tracing
	ctx := context.Background()
	shutdownOtel := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "habitloop-backend",
		Environment: os.Getenv("APP_ENV"),
		Version:     os.Getenv("APP_VERSION"),
	})
	if shutdownOtel != nil {
		defer func() {
			if err := shutdownOtel(context.Background()); err != nil {
				log.Warn("Otel shutdown failed", "error", err)
			}
		}()
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	taskRepo := repos.NewTaskRepo(thePG, log)
	dailyTaskRepo := repos.NewDailyTaskRepo(thePG, log)
	completionRepo := repos.NewCompletionRepo(thePG, log)
	badgeRepo := repos.NewBadgeRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	taskSelectionService := services.NewTaskSelectionService(thePG, log, userRepo, taskRepo, dailyTaskRepo)
	badgeService := services.NewBadgeService(thePG, log, userRepo, completionRepo, badgeRepo)
	completionService := services.NewCompletionService(thePG, log, userRepo, taskRepo, dailyTaskRepo, completionRepo, badgeService)
	leaderboardService := services.NewLeaderboardService(thePG, log, userRepo)
	userService := services.NewUserService(thePG, log, userRepo, dailyTaskRepo)
	taskService := services.NewTaskService(thePG, log, userRepo, taskRepo)
	seedService := services.NewSeedService(thePG, log, taskRepo)
	streakSweepService := services.NewStreakSweepService(thePG, log, userRepo)

	// Seed
	if err := seedService.SeedCatalog(ctx, cfg.SeedCatalogPath); err != nil {
		log.Warn("Task catalog seed failed", "error", err)
	}

	// Streak sweep
	if cfg.StreakSweepEnabled {
		streakSweepService.Start(ctx, cfg.StreakSweepEvery)
		log.Info("Streak sweep started", "interval", cfg.StreakSweepEvery)
	}

	// Handlers
	log.Info("Setting up Handlers from main...")
	dailyTaskHandler := handlers.NewDailyTaskHandler(taskSelectionService)
	completionHandler := handlers.NewCompletionHandler(completionService)
	badgeHandler := handlers.NewBadgeHandler(badgeService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, cfg.JWTSecretKey)

	// Router
	router := server.NewRouter(server.RouterConfig{
		AuthMiddleware:     authMiddleware,
		DailyTaskHandler:   dailyTaskHandler,
		CompletionHandler:  completionHandler,
		BadgeHandler:       badgeHandler,
		LeaderboardHandler: leaderboardHandler,
		UserHandler:        userHandler,
		TaskHandler:        taskHandler,
	})

	log.Info("Starting server...", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Error("Server exited", "error", err)
		os.Exit(1)
	}
}
