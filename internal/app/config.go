package app

import (
	"time"

	"github.com/habitloop/habitloop-backend/internal/pkg/logger"
	"github.com/habitloop/habitloop-backend/internal/utils"
)

type Config struct {
	Port               string
	JWTSecretKey       string
	SeedCatalogPath    string
	StreakSweepEnabled bool
	StreakSweepEvery   time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	seedCatalogPath := utils.GetEnv("TASK_CATALOG_PATH", "config/tasks.yaml", log)
	sweepEnabled := utils.GetEnvAsBool("STREAK_SWEEP_ENABLED", true, log)
	sweepEverySeconds := utils.GetEnvAsInt("STREAK_SWEEP_INTERVAL", 3600, log)
	return Config{
		Port:               port,
		JWTSecretKey:       jwtSecretKey,
		SeedCatalogPath:    seedCatalogPath,
		StreakSweepEnabled: sweepEnabled,
		StreakSweepEvery:   time.Duration(sweepEverySeconds) * time.Second,
	}
}
