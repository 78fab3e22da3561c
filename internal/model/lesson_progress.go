package model

import (
	"time"
)

// LessonProgress marks one lesson as completed by one user. The unique
// composite index makes MarkComplete an idempotent upsert. CompletedAt stays
// nil for rows that only carry watch time.
// swagger:model LessonProgress
type LessonProgress struct {
	UUIDBase
	UserID      string     `gorm:"type:varchar(36);index:idx_user_lesson,unique;not null" json:"userId"`
	LessonID    string     `gorm:"type:varchar(36);index:idx_user_lesson,unique;not null" json:"lessonId"`
	CompletedAt *time.Time `json:"completedAt"`
	WatchTime   int        `gorm:"default:0" json:"watchTime"` // seconds
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}
