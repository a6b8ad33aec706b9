package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/habitloop/habitloop-backend/internal/pkg/logger"
	"github.com/habitloop/habitloop-backend/internal/types"
)

type BadgeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Badge) ([]*types.Badge, error)
	Exists(ctx context.Context, tx *gorm.DB, userID uuid.UUID, badgeName string) (bool, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Badge, error)
}

type badgeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBadgeRepo(db *gorm.DB, baseLog *logger.Logger) BadgeRepo {
	repoLog := baseLog.With("repo", "BadgeRepo")
	return &badgeRepo{db: db, log: repoLog}
}

func (br *badgeRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Badge) ([]*types.Badge, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	if len(rows) == 0 {
		return []*types.Badge{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (br *badgeRepo) Exists(ctx context.Context, tx *gorm.DB, userID uuid.UUID, badgeName string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Badge{}).
		Where("user_id = ? AND badge_name = ?", userID, badgeName).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (br *badgeRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Badge, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var results []*types.Badge
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("earned_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
