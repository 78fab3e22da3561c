package model

type CourseLevel string

const (
	LevelBeginner     CourseLevel = "beginner"
	LevelIntermediate CourseLevel = "intermediate"
	LevelAdvanced     CourseLevel = "advanced"
)

// swagger:model Course
type Course struct {
	UUIDBase
	InstructorID     string      `gorm:"type:varchar(36);index;not null" json:"instructorId"`
	Title            string      `gorm:"size:200;not null" json:"title"`
	Description      string      `gorm:"type:text;not null" json:"description"`
	Category         string      `gorm:"size:100;not null" json:"category"`
	Price            float64     `gorm:"default:0" json:"price"`
	Level            CourseLevel `gorm:"size:20;default:'beginner'" json:"level"`
	IsPublished      bool        `gorm:"default:false;index" json:"isPublished"`
	ThumbnailURL     string      `gorm:"size:255" json:"thumbnailUrl"`
	WhatYouWillLearn []string    `gorm:"type:json;serializer:json" json:"whatYouWillLearn"`
	Requirements     []string    `gorm:"type:json;serializer:json" json:"requirements"`
}

func (Course) TableName() string {
	return "courses"
}
