package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/habitloop/habitloop-backend/internal/pkg/logger"
	"github.com/habitloop/habitloop-backend/internal/repos"
	"github.com/habitloop/habitloop-backend/internal/types"
)

const (
	bundleSize         = 5
	interestQuota      = 2
	randomQuota        = 1
	trendingQuota      = 1
	challengeQuota     = 1
	trendingWindowDays = 7
)

type SelectionBreakdown struct {
	InterestBased []*types.Task `json:"interest_based"`
	Random        []*types.Task `json:"random"`
	Trending      []*types.Task `json:"trending"`
	Challenge     []*types.Task `json:"challenge"`
}

type SelectionResult struct {
	Tasks     []*types.Task
	Breakdown SelectionBreakdown
}

type DailyTasksResult struct {
	Tasks     []*types.Task       `json:"tasks"`
	Date      string              `json:"date"`
	Generated bool                `json:"generated"`
	Breakdown *SelectionBreakdown `json:"breakdown,omitempty"`
}

type TaskSelectionService interface {
	// SelectDailyTasks assembles a fresh 5-task bundle without persisting it.
	SelectDailyTasks(ctx context.Context, userID uuid.UUID, date string) (*SelectionResult, error)
	// GetOrGenerateDailyTasks returns the stored bundle for the date, or
	// generates one and persists the assignments as a batch.
	GetOrGenerateDailyTasks(ctx context.Context, userID uuid.UUID, date string) (*DailyTasksResult, error)
}

type taskSelectionService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	taskRepo      repos.TaskRepo
	dailyTaskRepo repos.DailyTaskRepo
}

func NewTaskSelectionService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, taskRepo repos.TaskRepo, dailyTaskRepo repos.DailyTaskRepo) TaskSelectionService {
	serviceLog := log.With("service", "TaskSelectionService")
	return &taskSelectionService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		taskRepo:      taskRepo,
		dailyTaskRepo: dailyTaskRepo,
	}
}

// Today formats a time as the assignment-date key (YYYY-MM-DD).
func Today(now time.Time) string {
	return now.Format("2006-01-02")
}

func (ts *taskSelectionService) SelectDailyTasks(ctx context.Context, userID uuid.UUID, date string) (*SelectionResult, error) {
	var interests []string
	found, err := ts.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	if len(found) > 0 && found[0] != nil {
		interests = found[0].Interests
	}

	selected := map[uuid.UUID]struct{}{}
	exclude := func() []uuid.UUID {
		ids := make([]uuid.UUID, 0, len(selected))
		for id := range selected {
			ids = append(ids, id)
		}
		return ids
	}
	mark := func(tasks []*types.Task) {
		for _, task := range tasks {
			selected[task.ID] = struct{}{}
		}
	}

	breakdown := SelectionBreakdown{
		InterestBased: []*types.Task{},
		Random:        []*types.Task{},
		Trending:      []*types.Task{},
		Challenge:     []*types.Task{},
	}

	interestTasks := ts.selectInterestBased(ctx, interests, interestQuota, exclude())
	breakdown.InterestBased = interestTasks
	mark(interestTasks)

	randomTasks := ts.selectRandom(ctx, randomQuota, exclude())
	breakdown.Random = randomTasks
	mark(randomTasks)

	trendingTasks := ts.selectTrending(ctx, trendingQuota, exclude())
	breakdown.Trending = trendingTasks
	mark(trendingTasks)

	challengeTasks := ts.selectChallenge(ctx, challengeQuota, exclude())
	breakdown.Challenge = challengeTasks
	mark(challengeTasks)

	allTasks := make([]*types.Task, 0, bundleSize)
	allTasks = append(allTasks, interestTasks...)
	allTasks = append(allTasks, randomTasks...)
	allTasks = append(allTasks, trendingTasks...)
	allTasks = append(allTasks, challengeTasks...)

	// Backfill any shortfall with random tasks, attributed to the random
	// bucket.
	if len(allTasks) < bundleSize {
		filler := ts.selectRandom(ctx, bundleSize-len(allTasks), exclude())
		allTasks = append(allTasks, filler...)
		breakdown.Random = append(breakdown.Random, filler...)
		mark(filler)
	}

	if len(allTasks) > bundleSize {
		allTasks = allTasks[:bundleSize]
	}

	return &SelectionResult{Tasks: allTasks, Breakdown: breakdown}, nil
}

func (ts *taskSelectionService) selectInterestBased(ctx context.Context, interests []string, count int, excludeIDs []uuid.UUID) []*types.Task {
	if len(interests) == 0 {
		return ts.selectRandom(ctx, count, excludeIDs)
	}

	matches, err := ts.taskRepo.ListByTagOverlap(ctx, nil, interests, excludeIDs, count*3)
	if err != nil {
		ts.log.Warn("Interest-based selection failed, falling back to random", "error", err)
		return ts.selectRandom(ctx, count, excludeIDs)
	}
	if len(matches) == 0 {
		return ts.selectRandom(ctx, count, excludeIDs)
	}

	shuffled := shuffleTasks(matches)
	if len(shuffled) > count {
		shuffled = shuffled[:count]
	}
	return shuffled
}

func (ts *taskSelectionService) selectRandom(ctx context.Context, count int, excludeIDs []uuid.UUID) []*types.Task {
	candidates, err := ts.taskRepo.ListCandidates(ctx, nil, excludeIDs, count*5)
	if err != nil {
		ts.log.Warn("Random selection failed", "error", err)
		return []*types.Task{}
	}
	if len(candidates) == 0 {
		return []*types.Task{}
	}

	shuffled := shuffleTasks(candidates)
	if len(shuffled) > count {
		shuffled = shuffled[:count]
	}
	return shuffled
}

func (ts *taskSelectionService) selectTrending(ctx context.Context, count int, excludeIDs []uuid.UUID) []*types.Task {
	since := time.Now().AddDate(0, 0, -trendingWindowDays)

	tasks, err := ts.taskRepo.ListTrending(ctx, nil, since, excludeIDs, count*2)
	if err != nil {
		ts.log.Warn("Trending selection failed, falling back to random", "error", err)
		return ts.selectRandom(ctx, count, excludeIDs)
	}
	if len(tasks) == 0 {
		// No completions in the window; rank by lifetime count instead.
		fallback, err := ts.taskRepo.ListTopByCompletionCount(ctx, nil, excludeIDs, count)
		if err != nil {
			ts.log.Warn("Trending fallback failed", "error", err)
			return []*types.Task{}
		}
		return fallback
	}

	if len(tasks) > count {
		tasks = tasks[:count]
	}
	return tasks
}

func (ts *taskSelectionService) selectChallenge(ctx context.Context, count int, excludeIDs []uuid.UUID) []*types.Task {
	tasks, err := ts.taskRepo.ListByType(ctx, nil, types.TaskCategoryChallenge, excludeIDs, count*3)
	if err != nil {
		ts.log.Warn("Challenge selection failed", "error", err)
		return []*types.Task{}
	}
	if len(tasks) == 0 {
		return []*types.Task{}
	}

	shuffled := shuffleTasks(tasks)
	if len(shuffled) > count {
		shuffled = shuffled[:count]
	}
	return shuffled
}

func (ts *taskSelectionService) GetOrGenerateDailyTasks(ctx context.Context, userID uuid.UUID, date string) (*DailyTasksResult, error) {
	exists, err := ts.dailyTaskRepo.ExistsForDate(ctx, nil, userID, date)
	if err != nil {
		return nil, fmt.Errorf("error checking existing assignments: %w", err)
	}

	if exists {
		assignments, err := ts.dailyTaskRepo.ListForDate(ctx, nil, userID, date)
		if err != nil {
			return nil, fmt.Errorf("error listing assignments: %w", err)
		}
		taskIDs := make([]uuid.UUID, 0, len(assignments))
		for _, a := range assignments {
			taskIDs = append(taskIDs, a.TaskID)
		}
		tasks, err := ts.taskRepo.GetByIDs(ctx, nil, taskIDs)
		if err != nil {
			return nil, fmt.Errorf("error fetching assigned tasks: %w", err)
		}
		byID := make(map[uuid.UUID]*types.Task, len(tasks))
		for _, task := range tasks {
			byID[task.ID] = task
		}
		ordered := make([]*types.Task, 0, len(assignments))
		for _, a := range assignments {
			if task, ok := byID[a.TaskID]; ok {
				ordered = append(ordered, task)
			}
		}
		return &DailyTasksResult{Tasks: ordered, Date: date, Generated: false}, nil
	}

	result, err := ts.SelectDailyTasks(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	rows := make([]*types.DailyTask, 0, len(result.Tasks))
	for _, task := range result.Tasks {
		rows = append(rows, &types.DailyTask{
			UserID:       userID,
			TaskID:       task.ID,
			AssignedDate: date,
		})
	}
	if _, err := ts.dailyTaskRepo.CreateBatch(ctx, nil, rows); err != nil {
		return nil, fmt.Errorf("error storing task assignments: %w", err)
	}

	ts.log.Info("Generated daily bundle", "date", date, "tasks", len(result.Tasks))
	return &DailyTasksResult{
		Tasks:     result.Tasks,
		Date:      date,
		Generated: true,
		Breakdown: &result.Breakdown,
	}, nil
}

func shuffleTasks(tasks []*types.Task) []*types.Task {
	shuffled := make([]*types.Task, len(tasks))
	copy(shuffled, tasks)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}
