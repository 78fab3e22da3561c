package repository

import (
	"course_market_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type LessonProgressRepository struct {
	DB *gorm.DB
}

func NewLessonProgressRepository(db *gorm.DB) *LessonProgressRepository {
	return &LessonProgressRepository{DB: db}
}

// MarkComplete upserts the completion row keyed on (user, lesson). Re-marking
// an already-completed lesson is a no-op: the original completed_at stays.
func (r *LessonProgressRepository) MarkComplete(userID, lessonID string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		var existing model.LessonProgress
		err := tx.Where("user_id = ? AND lesson_id = ?", userID, lessonID).
			First(&existing).Error

		if err == nil {
			if existing.CompletedAt != nil {
				return nil
			}
			// Row created by watch-time reporting; promote it.
			return tx.Model(&existing).Update("completed_at", &now).Error
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		progress := &model.LessonProgress{
			UserID:      userID,
			LessonID:    lessonID,
			CompletedAt: &now,
		}
		return tx.Create(progress).Error
	})
}

// AddWatchTime accumulates player-reported watch seconds, creating the row if
// the lesson has not been marked complete yet.
func (r *LessonProgressRepository) AddWatchTime(userID, lessonID string, seconds int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.LessonProgress
		err := tx.Where("user_id = ? AND lesson_id = ?", userID, lessonID).
			First(&existing).Error

		if err == gorm.ErrRecordNotFound {
			progress := &model.LessonProgress{
				UserID:    userID,
				LessonID:  lessonID,
				WatchTime: seconds,
			}
			return tx.Create(progress).Error
		}
		if err != nil {
			return err
		}

		return tx.Model(&existing).
			Update("watch_time", gorm.Expr("watch_time + ?", seconds)).
			Error
	})
}

// CompletedLessonIDs returns the subset of lessonIDs the user has completed.
// The query is restricted to the given set so progress from other courses
// never leaks in.
func (r *LessonProgressRepository) CompletedLessonIDs(userID string, lessonIDs []string) ([]string, error) {
	var ids []string
	if len(lessonIDs) == 0 {
		return ids, nil
	}
	err := r.DB.Model(&model.LessonProgress{}).
		Where("user_id = ? AND lesson_id IN ? AND completed_at IS NOT NULL", userID, lessonIDs).
		Pluck("lesson_id", &ids).Error
	return ids, err
}
