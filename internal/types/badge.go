package types

import (
	"time"

	"github.com/google/uuid"
)

type Badge struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_badge_user_name;column:user_id" json:"user_id"`
	BadgeName        string    `gorm:"not null;uniqueIndex:idx_badge_user_name;column:badge_name" json:"badge_name"`
	BadgeDescription string    `gorm:"not null;column:badge_description" json:"badge_description"`
	EarnedAt         time.Time `gorm:"not null;column:earned_at" json:"earned_at"`
}

func (Badge) TableName() string {
	return "badge"
}
