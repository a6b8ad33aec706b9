package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/habitloop/habitloop-backend/internal/pkg/logger"
	"github.com/habitloop/habitloop-backend/internal/types"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func makeTask(title, taskType string, tags []string, difficulty int) *types.Task {
	return &types.Task{
		ID:              uuid.New(),
		Title:           title,
		Description:     "do the thing",
		Category:        taskType,
		Type:            taskType,
		DurationSeconds: 60,
		Tags:            tags,
		Difficulty:      difficulty,
	}
}

func catalogTasks() []*types.Task {
	var tasks []*types.Task
	for i := 0; i < 6; i++ {
		tasks = append(tasks, makeTask(fmt.Sprintf("learn-%d", i), types.TaskCategoryLearn, []string{"reading"}, 2))
	}
	for i := 0; i < 3; i++ {
		tasks = append(tasks, makeTask(fmt.Sprintf("move-%d", i), types.TaskCategoryMove, []string{"fitness"}, 3))
	}
	tasks = append(tasks, makeTask("challenge-0", types.TaskCategoryChallenge, []string{"grit"}, 5))
	tasks = append(tasks, makeTask("challenge-1", types.TaskCategoryChallenge, []string{"grit"}, 4))
	return tasks
}

func assertBundle(t *testing.T, tasks []*types.Task) {
	t.Helper()
	if len(tasks) != 5 {
		t.Fatalf("bundle size: want=5 got=%d", len(tasks))
	}
	seen := map[uuid.UUID]struct{}{}
	for _, task := range tasks {
		if _, dup := seen[task.ID]; dup {
			t.Fatalf("duplicate task in bundle: %s", task.Title)
		}
		seen[task.ID] = struct{}{}
	}
}

func TestSelectDailyTasksExactlyFiveDistinct(t *testing.T) {
	log := testLogger(t)
	user := &types.User{ID: uuid.New(), Name: "ana", Interests: []string{"fitness"}}
	taskRepo := newFakeTaskRepo(catalogTasks()...)
	taskRepo.trending = taskRepo.tasks[:2]
	svc := NewTaskSelectionService(nil, log, newFakeUserRepo(user), taskRepo, &fakeDailyTaskRepo{})

	result, err := svc.SelectDailyTasks(context.Background(), user.ID, "2026-03-10")
	if err != nil {
		t.Fatalf("SelectDailyTasks: %v", err)
	}
	assertBundle(t, result.Tasks)

	if got := len(result.Breakdown.InterestBased); got != 2 {
		t.Fatalf("interest bucket: want=2 got=%d", got)
	}
	if got := len(result.Breakdown.Trending); got != 1 {
		t.Fatalf("trending bucket: want=1 got=%d", got)
	}
	if got := len(result.Breakdown.Challenge); got != 1 {
		t.Fatalf("challenge bucket: want=1 got=%d", got)
	}
	for _, task := range result.Breakdown.Challenge {
		if task.Type != types.TaskCategoryChallenge {
			t.Fatalf("challenge bucket has %s task", task.Type)
		}
	}
}

func TestSelectDailyTasksNoInterests(t *testing.T) {
	log := testLogger(t)
	user := &types.User{ID: uuid.New(), Name: "ben"}
	taskRepo := newFakeTaskRepo(catalogTasks()...)
	svc := NewTaskSelectionService(nil, log, newFakeUserRepo(user), taskRepo, &fakeDailyTaskRepo{})

	result, err := svc.SelectDailyTasks(context.Background(), user.ID, "2026-03-10")
	if err != nil {
		t.Fatalf("SelectDailyTasks: %v", err)
	}
	assertBundle(t, result.Tasks)
}

func TestSelectDailyTasksBackfillsWhenChallengeMissing(t *testing.T) {
	log := testLogger(t)
	user := &types.User{ID: uuid.New(), Name: "cai", Interests: []string{"fitness"}}
	var tasks []*types.Task
	for i := 0; i < 8; i++ {
		tasks = append(tasks, makeTask(fmt.Sprintf("reflect-%d", i), types.TaskCategoryReflect, []string{"calm"}, 1))
	}
	svc := NewTaskSelectionService(nil, log, newFakeUserRepo(user), newFakeTaskRepo(tasks...), &fakeDailyTaskRepo{})

	result, err := svc.SelectDailyTasks(context.Background(), user.ID, "2026-03-10")
	if err != nil {
		t.Fatalf("SelectDailyTasks: %v", err)
	}
	assertBundle(t, result.Tasks)
	if len(result.Breakdown.Challenge) != 0 {
		t.Fatalf("challenge bucket should be empty, got %d", len(result.Breakdown.Challenge))
	}
}

func TestSelectDailyTasksTrendingQueryFailureDegrades(t *testing.T) {
	log := testLogger(t)
	user := &types.User{ID: uuid.New(), Name: "dee"}
	taskRepo := newFakeTaskRepo(catalogTasks()...)
	taskRepo.failTrending = true
	svc := NewTaskSelectionService(nil, log, newFakeUserRepo(user), taskRepo, &fakeDailyTaskRepo{})

	result, err := svc.SelectDailyTasks(context.Background(), user.ID, "2026-03-10")
	if err != nil {
		t.Fatalf("SelectDailyTasks: %v", err)
	}
	assertBundle(t, result.Tasks)
}

func TestGetOrGenerateDailyTasksIsGeneratedOnce(t *testing.T) {
	log := testLogger(t)
	user := &types.User{ID: uuid.New(), Name: "eva", Interests: []string{"reading"}}
	dailyRepo := &fakeDailyTaskRepo{}
	svc := NewTaskSelectionService(nil, log, newFakeUserRepo(user), newFakeTaskRepo(catalogTasks()...), dailyRepo)

	first, err := svc.GetOrGenerateDailyTasks(context.Background(), user.ID, "2026-03-10")
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if !first.Generated {
		t.Fatal("first call should generate")
	}
	if first.Breakdown == nil {
		t.Fatal("generated bundle should carry a breakdown")
	}
	assertBundle(t, first.Tasks)
	if len(dailyRepo.rows) != 5 {
		t.Fatalf("persisted assignments: want=5 got=%d", len(dailyRepo.rows))
	}

	second, err := svc.GetOrGenerateDailyTasks(context.Background(), user.ID, "2026-03-10")
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if second.Generated {
		t.Fatal("second call must not regenerate")
	}
	assertBundle(t, second.Tasks)
	if len(dailyRepo.rows) != 5 {
		t.Fatalf("assignments after refetch: want=5 got=%d", len(dailyRepo.rows))
	}

	firstIDs := map[uuid.UUID]struct{}{}
	for _, task := range first.Tasks {
		firstIDs[task.ID] = struct{}{}
	}
	for _, task := range second.Tasks {
		if _, ok := firstIDs[task.ID]; !ok {
			t.Fatalf("refetched bundle contains unassigned task %s", task.Title)
		}
	}
}
