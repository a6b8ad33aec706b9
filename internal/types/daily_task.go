package types

import (
	"time"

	"github.com/google/uuid"
)

// DailyTask is one assignment in a user's daily bundle. A (user, task, date)
// triple exists at most once and Completed flips false to true exactly once.
type DailyTask struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_daily_task_user_task_date;column:user_id" json:"user_id"`
	TaskID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_daily_task_user_task_date;column:task_id" json:"task_id"`
	AssignedDate string     `gorm:"not null;uniqueIndex:idx_daily_task_user_task_date;column:assigned_date" json:"assigned_date"`
	Completed    bool       `gorm:"not null;default:false;column:completed" json:"completed"`
	CompletedAt  *time.Time `gorm:"column:completed_at" json:"completed_at"`
	CoinsEarned  int        `gorm:"not null;default:0;column:coins_earned" json:"coins_earned"`
	CreatedAt    time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (DailyTask) TableName() string {
	return "daily_task"
}
