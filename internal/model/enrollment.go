package model

import (
	"time"
)

// swagger:model Enrollment
type Enrollment struct {
	UUIDBase
	UserID      string     `gorm:"type:varchar(36);index:idx_user_course,unique;not null" json:"userId"`
	CourseID    string     `gorm:"type:varchar(36);index:idx_user_course,unique;not null" json:"courseId"`
	EnrolledAt  time.Time  `json:"enrolledAt"`
	Progress    int        `gorm:"default:0" json:"progress"` // completion percentage, denormalized
	CompletedAt *time.Time `json:"completedAt"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
