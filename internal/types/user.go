package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type User struct {
	ID                 uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Email              string                      `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Name               string                      `gorm:"not null;column:name" json:"name"`
	AvatarURL          string                      `gorm:"column:avatar_url" json:"avatar_url"`
	Streak             int                         `gorm:"not null;default:0;column:streak" json:"streak"`
	Coins              int                         `gorm:"not null;default:0;column:coins" json:"coins"`
	XP                 int                         `gorm:"not null;default:0;column:xp" json:"xp"`
	LastCompletionDate *time.Time                  `gorm:"column:last_completion_date" json:"last_completion_date"`
	Interests          datatypes.JSONSlice[string] `gorm:"column:interests" json:"interests"`
	IsAdmin            bool                        `gorm:"not null;default:false;column:is_admin" json:"is_admin"`
	CreatedAt          time.Time                   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time                   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "user"
}
