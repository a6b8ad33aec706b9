package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/habitloop/habitloop-backend/internal/types"
)

var errFakeDown = errors.New("store unavailable")

type fakeUserRepo struct {
	users   map[uuid.UUID]*types.User
	failAll bool
}

func newFakeUserRepo(users ...*types.User) *fakeUserRepo {
	m := make(map[uuid.UUID]*types.User, len(users))
	for _, u := range users {
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		m[u.ID] = u
	}
	return &fakeUserRepo{users: m}
}

func (f *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error) {
	for _, u := range users {
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		f.users[u.ID] = u
	}
	return users, nil
}

func (f *fakeUserRepo) GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.User, error) {
	if f.failAll {
		return nil, errFakeDown
	}
	var out []*types.User
	for _, id := range userIDs {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) AddCoinsAndXP(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount int) error {
	u, ok := f.users[userID]
	if !ok {
		return errFakeDown
	}
	u.Coins += amount
	u.XP += amount
	return nil
}

func (f *fakeUserRepo) SetStreak(ctx context.Context, tx *gorm.DB, userID uuid.UUID, streak int, lastCompletion time.Time) error {
	u, ok := f.users[userID]
	if !ok {
		return errFakeDown
	}
	u.Streak = streak
	last := lastCompletion
	u.LastCompletionDate = &last
	return nil
}

func (f *fakeUserRepo) ClearStreak(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	u, ok := f.users[userID]
	if !ok {
		return errFakeDown
	}
	u.Streak = 0
	return nil
}

func (f *fakeUserRepo) ListWithActiveStreak(ctx context.Context, tx *gorm.DB) ([]*types.User, error) {
	var out []*types.User
	for _, u := range f.users {
		if u.Streak > 0 {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) TopByCoins(ctx context.Context, tx *gorm.DB, limit int) ([]*types.User, error) {
	out := make([]*types.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Coins > out[j].Coins })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeUserRepo) CountWithMoreCoins(ctx context.Context, tx *gorm.DB, coins int) (int64, error) {
	var count int64
	for _, u := range f.users {
		if u.Coins > coins {
			count++
		}
	}
	return count, nil
}

type fakeTaskRepo struct {
	tasks        []*types.Task
	trending     []*types.Task
	failTrending bool
	failOverlap  bool
}

func newFakeTaskRepo(tasks ...*types.Task) *fakeTaskRepo {
	for _, task := range tasks {
		if task.ID == uuid.Nil {
			task.ID = uuid.New()
		}
	}
	return &fakeTaskRepo{tasks: tasks}
}

func excluded(id uuid.UUID, excludeIDs []uuid.UUID) bool {
	for _, e := range excludeIDs {
		if e == id {
			return true
		}
	}
	return false
}

func (f *fakeTaskRepo) Create(ctx context.Context, tx *gorm.DB, tasks []*types.Task) ([]*types.Task, error) {
	for _, task := range tasks {
		if task.ID == uuid.Nil {
			task.ID = uuid.New()
		}
	}
	f.tasks = append(f.tasks, tasks...)
	return tasks, nil
}

func (f *fakeTaskRepo) GetByIDs(ctx context.Context, tx *gorm.DB, taskIDs []uuid.UUID) ([]*types.Task, error) {
	var out []*types.Task
	for _, task := range f.tasks {
		for _, id := range taskIDs {
			if task.ID == id {
				out = append(out, task)
			}
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	return int64(len(f.tasks)), nil
}

func (f *fakeTaskRepo) ListCandidates(ctx context.Context, tx *gorm.DB, excludeIDs []uuid.UUID, limit int) ([]*types.Task, error) {
	var out []*types.Task
	for _, task := range f.tasks {
		if excluded(task.ID, excludeIDs) {
			continue
		}
		out = append(out, task)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) ListByTagOverlap(ctx context.Context, tx *gorm.DB, tags []string, excludeIDs []uuid.UUID, limit int) ([]*types.Task, error) {
	if f.failOverlap {
		return nil, errFakeDown
	}
	wanted := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		wanted[tag] = struct{}{}
	}
	var out []*types.Task
	for _, task := range f.tasks {
		if excluded(task.ID, excludeIDs) {
			continue
		}
		for _, tag := range task.Tags {
			if _, ok := wanted[tag]; ok {
				out = append(out, task)
				break
			}
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) ListByType(ctx context.Context, tx *gorm.DB, taskType string, excludeIDs []uuid.UUID, limit int) ([]*types.Task, error) {
	var out []*types.Task
	for _, task := range f.tasks {
		if task.Type != taskType || excluded(task.ID, excludeIDs) {
			continue
		}
		out = append(out, task)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) ListTrending(ctx context.Context, tx *gorm.DB, since time.Time, excludeIDs []uuid.UUID, limit int) ([]*types.Task, error) {
	if f.failTrending {
		return nil, errFakeDown
	}
	var out []*types.Task
	for _, task := range f.trending {
		if excluded(task.ID, excludeIDs) {
			continue
		}
		out = append(out, task)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) ListTopByCompletionCount(ctx context.Context, tx *gorm.DB, excludeIDs []uuid.UUID, limit int) ([]*types.Task, error) {
	out := make([]*types.Task, 0, len(f.tasks))
	for _, task := range f.tasks {
		if excluded(task.ID, excludeIDs) {
			continue
		}
		out = append(out, task)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CompletionCount > out[j].CompletionCount })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeTaskRepo) IncrementCompletionCount(ctx context.Context, tx *gorm.DB, taskID uuid.UUID) error {
	for _, task := range f.tasks {
		if task.ID == taskID {
			task.CompletionCount++
			return nil
		}
	}
	return errFakeDown
}

type fakeDailyTaskRepo struct {
	rows []*types.DailyTask
}

func (f *fakeDailyTaskRepo) CreateBatch(ctx context.Context, tx *gorm.DB, rows []*types.DailyTask) ([]*types.DailyTask, error) {
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
	}
	f.rows = append(f.rows, rows...)
	return rows, nil
}

func (f *fakeDailyTaskRepo) Get(ctx context.Context, tx *gorm.DB, userID, taskID uuid.UUID, date string) (*types.DailyTask, error) {
	for _, row := range f.rows {
		if row.UserID == userID && row.TaskID == taskID && row.AssignedDate == date {
			return row, nil
		}
	}
	return nil, nil
}

func (f *fakeDailyTaskRepo) ListForDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date string) ([]*types.DailyTask, error) {
	var out []*types.DailyTask
	for _, row := range f.rows {
		if row.UserID == userID && row.AssignedDate == date {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeDailyTaskRepo) ExistsForDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date string) (bool, error) {
	rows, _ := f.ListForDate(ctx, tx, userID, date)
	return len(rows) > 0, nil
}

func (f *fakeDailyTaskRepo) CountCompletedForDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date string) (int64, error) {
	var count int64
	for _, row := range f.rows {
		if row.UserID == userID && row.AssignedDate == date && row.Completed {
			count++
		}
	}
	return count, nil
}

func (f *fakeDailyTaskRepo) MarkCompleted(ctx context.Context, tx *gorm.DB, id uuid.UUID, completedAt time.Time, coinsEarned int) error {
	for _, row := range f.rows {
		if row.ID == id {
			row.Completed = true
			at := completedAt
			row.CompletedAt = &at
			row.CoinsEarned = coinsEarned
			return nil
		}
	}
	return errFakeDown
}

type fakeCompletionRepo struct {
	rows []*types.Completion
}

func (f *fakeCompletionRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Completion) ([]*types.Completion, error) {
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
	}
	f.rows = append(f.rows, rows...)
	return rows, nil
}

func (f *fakeCompletionRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	for _, row := range f.rows {
		if row.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeCompletionRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Completion, error) {
	var out []*types.Completion
	for _, row := range f.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeBadgeRepo struct {
	rows []*types.Badge
}

func (f *fakeBadgeRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Badge) ([]*types.Badge, error) {
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
	}
	f.rows = append(f.rows, rows...)
	return rows, nil
}

func (f *fakeBadgeRepo) Exists(ctx context.Context, tx *gorm.DB, userID uuid.UUID, badgeName string) (bool, error) {
	for _, row := range f.rows {
		if row.UserID == userID && row.BadgeName == badgeName {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBadgeRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Badge, error) {
	var out []*types.Badge
	for _, row := range f.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}
