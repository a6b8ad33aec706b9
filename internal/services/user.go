package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/habitloop/habitloop-backend/internal/gamification"
	"github.com/habitloop/habitloop-backend/internal/pkg/logger"
	"github.com/habitloop/habitloop-backend/internal/repos"
)

type UserStats struct {
	Streak             int                    `json:"streak"`
	Coins              int                    `json:"coins"`
	XP                 int                    `json:"xp"`
	Level              int                    `json:"level"`
	LastCompletionDate *string                `json:"last_completion_date"`
	CompletionsToday   int                    `json:"completions_today"`
	LevelInfo          gamification.LevelInfo `json:"level_info"`
}

type UserService interface {
	GetStats(ctx context.Context, userID uuid.UUID, date string) (*UserStats, error)
}

type userService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	dailyTaskRepo repos.DailyTaskRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, dailyTaskRepo repos.DailyTaskRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{db: db, log: serviceLog, userRepo: userRepo, dailyTaskRepo: dailyTaskRepo}
}

func (us *userService) GetStats(ctx context.Context, userID uuid.UUID, date string) (*UserStats, error) {
	found, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, ErrUserNotFound
	}
	user := found[0]

	completionsToday := 0
	if count, err := us.dailyTaskRepo.CountCompletedForDate(ctx, nil, userID, date); err != nil {
		us.log.Warn("Failed to count today's completions", "error", err)
	} else {
		completionsToday = int(count)
	}

	stats := &UserStats{
		Streak:           user.Streak,
		Coins:            user.Coins,
		XP:               user.XP,
		Level:            gamification.Level(user.XP),
		CompletionsToday: completionsToday,
		LevelInfo:        gamification.GetLevelInfo(user.XP),
	}
	if user.LastCompletionDate != nil {
		formatted := Today(*user.LastCompletionDate)
		stats.LastCompletionDate = &formatted
	}
	return stats, nil
}
