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

type LeaderboardEntry struct {
	Rank      int       `json:"rank"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Coins     int       `json:"coins"`
	Streak    int       `json:"streak"`
	Level     int       `json:"level"`
}

type LeaderboardService interface {
	// GetGlobalLeaderboard returns the top users by coins with 1-based
	// ranks. Ties keep a stable descending-coin order.
	GetGlobalLeaderboard(ctx context.Context, limit int) ([]*LeaderboardEntry, error)
	// GetUserRank is 1 plus the number of users with strictly more coins.
	GetUserRank(ctx context.Context, userID uuid.UUID) (int, error)
}

type leaderboardService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewLeaderboardService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) LeaderboardService {
	serviceLog := log.With("service", "LeaderboardService")
	return &leaderboardService{db: db, log: serviceLog, userRepo: userRepo}
}

const defaultLeaderboardLimit = 100

func (ls *leaderboardService) GetGlobalLeaderboard(ctx context.Context, limit int) ([]*LeaderboardEntry, error) {
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}

	users, err := ls.userRepo.TopByCoins(ctx, nil, limit)
	if err != nil {
		return nil, fmt.Errorf("error fetching leaderboard: %w", err)
	}

	entries := make([]*LeaderboardEntry, 0, len(users))
	for i, user := range users {
		entries = append(entries, &LeaderboardEntry{
			Rank:      i + 1,
			UserID:    user.ID,
			Name:      user.Name,
			AvatarURL: user.AvatarURL,
			Coins:     user.Coins,
			Streak:    user.Streak,
			Level:     gamification.Level(user.XP),
		})
	}
	return entries, nil
}

func (ls *leaderboardService) GetUserRank(ctx context.Context, userID uuid.UUID) (int, error) {
	found, err := ls.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return 0, fmt.Errorf("error fetching user: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return 0, ErrUserNotFound
	}

	ahead, err := ls.userRepo.CountWithMoreCoins(ctx, nil, found[0].Coins)
	if err != nil {
		return 0, fmt.Errorf("error fetching user rank: %w", err)
	}
	return int(ahead) + 1, nil
}
