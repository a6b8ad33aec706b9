package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/habitloop/habitloop-backend/internal/pkg/logger"
	"github.com/habitloop/habitloop-backend/internal/types"
)

type DailyTaskRepo interface {
	// CreateBatch persists a generated bundle in one insert.
	CreateBatch(ctx context.Context, tx *gorm.DB, rows []*types.DailyTask) ([]*types.DailyTask, error)
	Get(ctx context.Context, tx *gorm.DB, userID, taskID uuid.UUID, date string) (*types.DailyTask, error)
	ListForDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date string) ([]*types.DailyTask, error)
	ExistsForDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date string) (bool, error)
	CountCompletedForDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date string) (int64, error)
	MarkCompleted(ctx context.Context, tx *gorm.DB, id uuid.UUID, completedAt time.Time, coinsEarned int) error
}

type dailyTaskRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDailyTaskRepo(db *gorm.DB, baseLog *logger.Logger) DailyTaskRepo {
	repoLog := baseLog.With("repo", "DailyTaskRepo")
	return &dailyTaskRepo{db: db, log: repoLog}
}

func (dr *dailyTaskRepo) CreateBatch(ctx context.Context, tx *gorm.DB, rows []*types.DailyTask) ([]*types.DailyTask, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	if len(rows) == 0 {
		return []*types.DailyTask{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (dr *dailyTaskRepo) Get(ctx context.Context, tx *gorm.DB, userID, taskID uuid.UUID, date string) (*types.DailyTask, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var results []*types.DailyTask
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND task_id = ? AND assigned_date = ?", userID, taskID, date).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (dr *dailyTaskRepo) ListForDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date string) ([]*types.DailyTask, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var results []*types.DailyTask
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND assigned_date = ?", userID, date).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (dr *dailyTaskRepo) ExistsForDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.DailyTask{}).
		Where("user_id = ? AND assigned_date = ?", userID, date).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (dr *dailyTaskRepo) CountCompletedForDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.DailyTask{}).
		Where("user_id = ? AND assigned_date = ? AND completed = ?", userID, date, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (dr *dailyTaskRepo) MarkCompleted(ctx context.Context, tx *gorm.DB, id uuid.UUID, completedAt time.Time, coinsEarned int) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.DailyTask{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"completed":    true,
			"completed_at": completedAt,
			"coins_earned": coinsEarned,
		}).Error
}
