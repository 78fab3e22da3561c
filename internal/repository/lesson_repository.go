package repository

import (
	"course_market_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) FindByCourse(courseID string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("course_id = ?", courseID).
		Order("order_index ASC").
		Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) CountByCourse(courseID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Lesson{}).
		Where("course_id = ?", courseID).
		Count(&count).Error
	return count, err
}

func (r *LessonRepository) FindByID(id string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, "id = ?", id).Error
	return &lesson, err
}

// ReplaceForCourse swaps the whole lesson set of a course in one transaction.
// OrderIndex is rewritten to a contiguous 1..N sequence in the order given,
// so a removed or reordered lesson never leaves gaps or duplicates behind.
func (r *LessonRepository) ReplaceForCourse(courseID string, lessons []model.Lesson) ([]model.Lesson, error) {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", courseID).
			Unscoped().
			Delete(&model.Lesson{}).Error; err != nil {
			return err
		}

		for i := range lessons {
			lessons[i].ID = ""
			lessons[i].CourseID = courseID
			lessons[i].OrderIndex = i + 1
		}

		if len(lessons) == 0 {
			return nil
		}
		return tx.Create(&lessons).Error
	})
	if err != nil {
		return nil, err
	}
	return lessons, nil
}
