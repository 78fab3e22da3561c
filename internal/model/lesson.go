package model

// Lesson belongs to a course. OrderIndex is the 1-based position within the
// course and stays a contiguous 1..N sequence after every lesson-set change.
// swagger:model Lesson
type Lesson struct {
	UUIDBase
	CourseID   string `gorm:"type:varchar(36);index;not null" json:"courseId"`
	Title      string `gorm:"size:200;not null" json:"title"`
	VideoURL   string `gorm:"size:255" json:"videoUrl"`
	Duration   int    `gorm:"default:0" json:"duration"` // seconds
	OrderIndex int    `gorm:"not null" json:"orderIndex"`
}

func (Lesson) TableName() string {
	return "lessons"
}
