package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/habitloop/habitloop-backend/internal/gamification"
	"github.com/habitloop/habitloop-backend/internal/pkg/logger"
	"github.com/habitloop/habitloop-backend/internal/repos"
)

const sweepConcurrency = 8

type StreakSweepService interface {
	// Sweep zeroes the streak of every user whose last completion has
	// lapsed past the 24h window.
	Sweep(ctx context.Context) (int, error)
	// Start runs Sweep on a ticker until the context is cancelled.
	Start(ctx context.Context, every time.Duration)
}

type streakSweepService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
	now      func() time.Time
}

func NewStreakSweepService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) StreakSweepService {
	serviceLog := log.With("service", "StreakSweepService")
	return &streakSweepService{db: db, log: serviceLog, userRepo: userRepo, now: time.Now}
}

func (ss *streakSweepService) Sweep(ctx context.Context) (int, error) {
	users, err := ss.userRepo.ListWithActiveStreak(ctx, nil)
	if err != nil {
		return 0, err
	}
	now := ss.now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sweepConcurrency)
	reset := make(chan struct{}, len(users))
	for _, user := range users {
		user := user
		if !gamification.ShouldResetStreak(user.LastCompletionDate, now) {
			continue
		}
		g.Go(func() error {
			if err := ss.userRepo.ClearStreak(gctx, nil, user.ID); err != nil {
				return err
			}
			reset <- struct{}{}
			return nil
		})
	}
	err = g.Wait()
	close(reset)
	count := len(reset)
	if count > 0 {
		ss.log.Info("Streak sweep reset lapsed streaks", "count", count)
	}
	return count, err
}

func (ss *streakSweepService) Start(ctx context.Context, every time.Duration) {
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := ss.Sweep(ctx); err != nil {
					ss.log.Error("Streak sweep failed", "error", err)
				}
			}
		}
	}()
}
