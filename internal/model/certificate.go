package model

import (
	"time"
)

// Certificate is issued once per (user, course) when every lesson of the
// course has a completion row. Immutable after creation.
// swagger:model Certificate
type Certificate struct {
	UUIDBase
	UserID         string    `gorm:"type:varchar(36);index:idx_user_course_cert,unique;not null" json:"userId"`
	CourseID       string    `gorm:"type:varchar(36);index:idx_user_course_cert,unique;not null" json:"courseId"`
	CertificateURL string    `gorm:"size:255" json:"certificateUrl"`
	IssuedAt       time.Time `json:"issuedAt"`
}

func (Certificate) TableName() string {
	return "certificates"
}
