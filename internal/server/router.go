package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/habitloop/habitloop-backend/internal/handlers"
	"github.com/habitloop/habitloop-backend/internal/middleware"
)

type RouterConfig struct {
	AuthMiddleware     *middleware.AuthMiddleware
	DailyTaskHandler   *handlers.DailyTaskHandler
	CompletionHandler  *handlers.CompletionHandler
	BadgeHandler       *handlers.BadgeHandler
	LeaderboardHandler *handlers.LeaderboardHandler
	UserHandler        *handlers.UserHandler
	TaskHandler        *handlers.TaskHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware("habitloop-backend"))

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)

	// ===============
	// || Protected ||
	// ===============
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())
	// Daily bundle
	api.GET("/tasks/daily", cfg.DailyTaskHandler.GetDailyTasks)
	api.POST("/complete", cfg.CompletionHandler.CompleteTask)
	// Gamification
	api.GET("/badges", cfg.BadgeHandler.GetBadges)
	api.GET("/leaderboard", cfg.LeaderboardHandler.GetLeaderboard)
	api.GET("/leaderboard/rank", cfg.LeaderboardHandler.GetMyRank)
	api.GET("/user/stats", cfg.UserHandler.GetStats)
	// Catalog admin
	api.POST("/tasks", cfg.TaskHandler.CreateTask)

	return router
}
