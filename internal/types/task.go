package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Task categories double as task types; the two columns must always agree.
const (
	TaskCategoryLearn     = "learn"
	TaskCategoryMove      = "move"
	TaskCategoryReflect   = "reflect"
	TaskCategoryFun       = "fun"
	TaskCategorySkill     = "skill"
	TaskCategoryChallenge = "challenge"
)

type Task struct {
	ID              uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Title           string                      `gorm:"not null;column:title" json:"title"`
	Description     string                      `gorm:"not null;column:description" json:"description"`
	Category        string                      `gorm:"not null;column:category" json:"category"`
	Type            string                      `gorm:"not null;column:type" json:"type"`
	DurationSeconds int                         `gorm:"not null;column:duration_seconds" json:"duration_seconds"`
	Tags            datatypes.JSONSlice[string] `gorm:"column:tags" json:"tags"`
	Difficulty      int                         `gorm:"not null;column:difficulty" json:"difficulty"`
	CompletionCount int                         `gorm:"not null;default:0;column:completion_count" json:"completion_count"`
	CreatedAt       time.Time                   `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (Task) TableName() string {
	return "task"
}
