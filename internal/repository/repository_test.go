package repository

import (
	"path/filepath"
	"testing"

	"course_market_backend/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Course{},
		&model.Lesson{},
		&model.Enrollment{},
		&model.LessonProgress{},
		&model.Certificate{},
	))

	return db
}

func createCourse(t *testing.T, db *gorm.DB, published bool) *model.Course {
	t.Helper()

	course := &model.Course{
		InstructorID: model.GenerateUUID(),
		Title:        "Go from Zero",
		Description:  "A course",
		Category:     "programming",
		IsPublished:  published,
	}
	require.NoError(t, db.Create(course).Error)
	return course
}

func createLessons(t *testing.T, db *gorm.DB, courseID string, n int) []model.Lesson {
	t.Helper()

	lessons := make([]model.Lesson, n)
	for i := range lessons {
		lessons[i] = model.Lesson{
			CourseID:   courseID,
			Title:      "Lesson",
			OrderIndex: i + 1,
		}
	}
	require.NoError(t, db.Create(&lessons).Error)
	return lessons
}
