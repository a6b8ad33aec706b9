package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/habitloop/habitloop-backend/internal/pkg/logger"
	"github.com/habitloop/habitloop-backend/internal/types"
)

type TaskRepo interface {
	Create(ctx context.Context, tx *gorm.DB, tasks []*types.Task) ([]*types.Task, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, taskIDs []uuid.UUID) ([]*types.Task, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	// ListCandidates returns up to limit tasks not in the exclusion set, in
	// storage order; callers shuffle.
	ListCandidates(ctx context.Context, tx *gorm.DB, excludeIDs []uuid.UUID, limit int) ([]*types.Task, error)
	// ListByTagOverlap returns tasks whose tag set intersects tags.
	ListByTagOverlap(ctx context.Context, tx *gorm.DB, tags []string, excludeIDs []uuid.UUID, limit int) ([]*types.Task, error)
	ListByType(ctx context.Context, tx *gorm.DB, taskType string, excludeIDs []uuid.UUID, limit int) ([]*types.Task, error)
	// ListTrending ranks tasks by completions logged since the cutoff, with
	// lifetime completion count as the tie breaker. Tasks without a recent
	// completion do not appear.
	ListTrending(ctx context.Context, tx *gorm.DB, since time.Time, excludeIDs []uuid.UUID, limit int) ([]*types.Task, error)
	ListTopByCompletionCount(ctx context.Context, tx *gorm.DB, excludeIDs []uuid.UUID, limit int) ([]*types.Task, error)
	IncrementCompletionCount(ctx context.Context, tx *gorm.DB, taskID uuid.UUID) error
}

type taskRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskRepo(db *gorm.DB, baseLog *logger.Logger) TaskRepo {
	repoLog := baseLog.With("repo", "TaskRepo")
	return &taskRepo{db: db, log: repoLog}
}

func (tr *taskRepo) Create(ctx context.Context, tx *gorm.DB, tasks []*types.Task) ([]*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	if len(tasks) == 0 {
		return []*types.Task{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (tr *taskRepo) GetByIDs(ctx context.Context, tx *gorm.DB, taskIDs []uuid.UUID) ([]*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.Task
	if len(taskIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", taskIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *taskRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Task{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func excludeScope(excludeIDs []uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if len(excludeIDs) == 0 {
			return q
		}
		return q.Where("id NOT IN ?", excludeIDs)
	}
}

func (tr *taskRepo) ListCandidates(ctx context.Context, tx *gorm.DB, excludeIDs []uuid.UUID, limit int) ([]*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.Task
	if err := transaction.WithContext(ctx).
		Scopes(excludeScope(excludeIDs)).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *taskRepo) ListByTagOverlap(ctx context.Context, tx *gorm.DB, tags []string, excludeIDs []uuid.UUID, limit int) ([]*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	if len(tags) == 0 {
		return []*types.Task{}, nil
	}

	// Tags live in a JSON column so the overlap test runs here rather than
	// in SQL; the catalog is small enough to scan.
	var candidates []*types.Task
	if err := transaction.WithContext(ctx).
		Scopes(excludeScope(excludeIDs)).
		Find(&candidates).Error; err != nil {
		return nil, err
	}

	wanted := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		wanted[tag] = struct{}{}
	}

	var results []*types.Task
	for _, task := range candidates {
		for _, tag := range task.Tags {
			if _, ok := wanted[tag]; ok {
				results = append(results, task)
				break
			}
		}
		if len(results) == limit {
			break
		}
	}
	return results, nil
}

func (tr *taskRepo) ListByType(ctx context.Context, tx *gorm.DB, taskType string, excludeIDs []uuid.UUID, limit int) ([]*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.Task
	if err := transaction.WithContext(ctx).
		Where("type = ?", taskType).
		Scopes(excludeScope(excludeIDs)).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *taskRepo) ListTrending(ctx context.Context, tx *gorm.DB, since time.Time, excludeIDs []uuid.UUID, limit int) ([]*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	q := transaction.WithContext(ctx).
		Model(&types.Task{}).
		Select("task.*").
		Joins("JOIN completion ON completion.task_id = task.id").
		Where("completion.completed_at >= ?", since)
	if len(excludeIDs) > 0 {
		q = q.Where("task.id NOT IN ?", excludeIDs)
	}

	var results []*types.Task
	if err := q.
		Group("task.id").
		Order("COUNT(completion.id) DESC, task.completion_count DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *taskRepo) ListTopByCompletionCount(ctx context.Context, tx *gorm.DB, excludeIDs []uuid.UUID, limit int) ([]*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.Task
	if err := transaction.WithContext(ctx).
		Scopes(excludeScope(excludeIDs)).
		Order("completion_count DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *taskRepo) IncrementCompletionCount(ctx context.Context, tx *gorm.DB, taskID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Task{}).
		Where("id = ?", taskID).
		Update("completion_count", gorm.Expr("completion_count + 1")).Error
}
