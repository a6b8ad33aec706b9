package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/habitloop/habitloop-backend/internal/gamification"
	"github.com/habitloop/habitloop-backend/internal/pkg/logger"
	"github.com/habitloop/habitloop-backend/internal/repos"
	"github.com/habitloop/habitloop-backend/internal/types"
)

type CompletionResult struct {
	Success           bool     `json:"success"`
	CoinsEarned       int      `json:"coins_earned"`
	XPGained          int      `json:"xp_gained"`
	StreakUpdated     bool     `json:"streak_updated"`
	NewStreak         int      `json:"new_streak"`
	AllTasksCompleted bool     `json:"all_tasks_completed"`
	NewBadges         []string `json:"new_badges,omitempty"`
}

type CompletionService interface {
	// CompleteTask transitions a Pending assignment to Completed and fans
	// out the reward pipeline. The assignment write is the authoritative
	// completion event; failures after it are logged and do not fail the
	// call.
	CompleteTask(ctx context.Context, userID, taskID uuid.UUID, date string) (*CompletionResult, error)
}

type completionService struct {
	db             *gorm.DB
	log            *logger.Logger
	userRepo       repos.UserRepo
	taskRepo       repos.TaskRepo
	dailyTaskRepo  repos.DailyTaskRepo
	completionRepo repos.CompletionRepo
	badgeService   BadgeService
	now            func() time.Time
}

func NewCompletionService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, taskRepo repos.TaskRepo, dailyTaskRepo repos.DailyTaskRepo, completionRepo repos.CompletionRepo, badgeService BadgeService) CompletionService {
	serviceLog := log.With("service", "CompletionService")
	return &completionService{
		db:             db,
		log:            serviceLog,
		userRepo:       userRepo,
		taskRepo:       taskRepo,
		dailyTaskRepo:  dailyTaskRepo,
		completionRepo: completionRepo,
		badgeService:   badgeService,
		now:            time.Now,
	}
}

func (cs *completionService) CompleteTask(ctx context.Context, userID, taskID uuid.UUID, date string) (*CompletionResult, error) {
	assignment, err := cs.dailyTaskRepo.Get(ctx, nil, userID, taskID, date)
	if err != nil {
		return nil, fmt.Errorf("error fetching assignment: %w", err)
	}
	if assignment == nil {
		return nil, ErrNotAssigned
	}
	if assignment.Completed {
		return nil, ErrAlreadyCompleted
	}

	tasks, err := cs.taskRepo.GetByIDs(ctx, nil, []uuid.UUID{taskID})
	if err != nil {
		return nil, fmt.Errorf("error fetching task: %w", err)
	}
	if len(tasks) == 0 || tasks[0] == nil {
		return nil, ErrTaskNotFound
	}
	task := tasks[0]

	coins, err := gamification.CoinsForDifficulty(task.Difficulty)
	if err != nil {
		return nil, err
	}

	now := cs.now()

	// The authoritative completion event; failure here aborts the whole
	// operation.
	if err := cs.dailyTaskRepo.MarkCompleted(ctx, nil, assignment.ID, now, coins); err != nil {
		return nil, fmt.Errorf("failed to update task completion: %w", err)
	}

	// Everything below is best-effort; the completion already happened.
	if err := cs.userRepo.AddCoinsAndXP(ctx, nil, userID, coins); err != nil {
		cs.log.Error("Failed to credit coins and xp", "error", err)
	}

	allCompleted := false
	completed, err := cs.dailyTaskRepo.CountCompletedForDate(ctx, nil, userID, date)
	if err != nil {
		cs.log.Error("Failed to count completed assignments", "error", err)
	} else {
		total, err := cs.dailyTaskRepo.ListForDate(ctx, nil, userID, date)
		if err != nil {
			cs.log.Error("Failed to list assignments", "error", err)
		} else {
			allCompleted = len(total) == bundleSize && completed == int64(bundleSize)
		}
	}

	streakUpdated := false
	newStreak := 0
	currentStreak := 0
	if found, err := cs.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID}); err != nil {
		cs.log.Error("Failed to fetch user for streak update", "error", err)
	} else if len(found) > 0 && found[0] != nil {
		user := found[0]
		currentStreak = user.Streak
		if allCompleted {
			next, changed := gamification.NextStreak(user.Streak, user.LastCompletionDate, now)
			if changed {
				if err := cs.userRepo.SetStreak(ctx, nil, userID, next, now); err != nil {
					cs.log.Error("Failed to update streak", "error", err)
					next = user.Streak
				}
			}
			newStreak = next
			currentStreak = next
			streakUpdated = true
		}
	}

	completion := &types.Completion{
		UserID:             userID,
		TaskID:             taskID,
		CompletedAt:        now,
		CoinsEarned:        coins,
		StreakAtCompletion: currentStreak,
	}
	if _, err := cs.completionRepo.Create(ctx, nil, []*types.Completion{completion}); err != nil {
		cs.log.Error("Failed to record completion", "error", err)
	}

	if err := cs.taskRepo.IncrementCompletionCount(ctx, nil, taskID); err != nil {
		cs.log.Error("Failed to increment task completion count", "error", err)
	}

	newBadges, err := cs.badgeService.CheckAndAwardAll(ctx, userID)
	if err != nil {
		cs.log.Error("Failed to check badges", "error", err)
		newBadges = nil
	}

	return &CompletionResult{
		Success:           true,
		CoinsEarned:       coins,
		XPGained:          coins,
		StreakUpdated:     streakUpdated,
		NewStreak:         newStreak,
		AllTasksCompleted: allCompleted,
		NewBadges:         newBadges,
	}, nil
}
