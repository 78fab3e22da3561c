package repository

import (
	"course_market_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(enrollment *model.Enrollment) error {
	return r.DB.Create(enrollment).Error
}

func (r *EnrollmentRepository) Find(userID, courseID string) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&enrollment).Error
	return &enrollment, err
}

// Exists reports whether an enrollment row is present. A query failure is
// returned as an error, never collapsed into "not enrolled".
func (r *EnrollmentRepository) Exists(userID, courseID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *EnrollmentRepository) FindByUser(userID string) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Where("user_id = ?", userID).
		Order("enrolled_at DESC").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentRepository) FindByCourses(courseIDs []string) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	if len(courseIDs) == 0 {
		return enrollments, nil
	}
	err := r.DB.Where("course_id IN ?", courseIDs).Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentRepository) CountByCourse(courseID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("course_id = ?", courseID).
		Count(&count).Error
	return count, err
}

func (r *EnrollmentRepository) CountByCourses(courseIDs []string) (int64, error) {
	if len(courseIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("course_id IN ?", courseIDs).
		Count(&count).Error
	return count, err
}

// UpdateProgress refreshes the denormalized completion fields. completedAt is
// nil while the course is not finished.
func (r *EnrollmentRepository) UpdateProgress(userID, courseID string, progress int, completedAt *time.Time) error {
	return r.DB.Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Updates(map[string]interface{}{
			"progress":     progress,
			"completed_at": completedAt,
		}).Error
}
