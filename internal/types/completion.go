package types

import (
	"time"

	"github.com/google/uuid"
)

// Completion is an append-only audit record, never mutated after insert.
type Completion struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	TaskID             uuid.UUID `gorm:"type:uuid;not null;index;column:task_id" json:"task_id"`
	CompletedAt        time.Time `gorm:"not null;index;column:completed_at" json:"completed_at"`
	CoinsEarned        int       `gorm:"not null;column:coins_earned" json:"coins_earned"`
	StreakAtCompletion int       `gorm:"not null;column:streak_at_completion" json:"streak_at_completion"`
}

func (Completion) TableName() string {
	return "completion"
}
