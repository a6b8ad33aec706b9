package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/habitloop/habitloop-backend/internal/pkg/logger"
	"github.com/habitloop/habitloop-backend/internal/types"
)

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.User, error)
	// AddCoinsAndXP credits coins and xp by the same amount as a store-side
	// increment, so concurrent completions never lose updates.
	AddCoinsAndXP(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount int) error
	SetStreak(ctx context.Context, tx *gorm.DB, userID uuid.UUID, streak int, lastCompletion time.Time) error
	ClearStreak(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
	ListWithActiveStreak(ctx context.Context, tx *gorm.DB) ([]*types.User, error)
	TopByCoins(ctx context.Context, tx *gorm.DB, limit int) ([]*types.User, error)
	CountWithMoreCoins(ctx context.Context, tx *gorm.DB, coins int) (int64, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (ur *userRepo) Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	if len(users) == 0 {
		return []*types.User{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (ur *userRepo) GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var results []*types.User
	if len(userIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", userIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) AddCoinsAndXP(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount int) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	return transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"coins": gorm.Expr("coins + ?", amount),
			"xp":    gorm.Expr("xp + ?", amount),
		}).Error
}

func (ur *userRepo) SetStreak(ctx context.Context, tx *gorm.DB, userID uuid.UUID, streak int, lastCompletion time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	return transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"streak":               streak,
			"last_completion_date": lastCompletion,
		}).Error
}

func (ur *userRepo) ClearStreak(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	return transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Update("streak", 0).Error
}

func (ur *userRepo) ListWithActiveStreak(ctx context.Context, tx *gorm.DB) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var results []*types.User
	if err := transaction.WithContext(ctx).
		Where("streak > 0").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) TopByCoins(ctx context.Context, tx *gorm.DB, limit int) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var results []*types.User
	if err := transaction.WithContext(ctx).
		Order("coins DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) CountWithMoreCoins(ctx context.Context, tx *gorm.DB, coins int) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("coins > ?", coins).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
