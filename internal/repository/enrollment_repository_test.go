package repository

import (
	"testing"
	"time"

	"course_market_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollmentExists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEnrollmentRepository(db)
	userID := model.GenerateUUID()
	course := createCourse(t, db, true)

	enrolled, err := repo.Exists(userID, course.ID)
	require.NoError(t, err)
	assert.False(t, enrolled)

	require.NoError(t, repo.Create(&model.Enrollment{
		UserID:     userID,
		CourseID:   course.ID,
		EnrolledAt: time.Now(),
	}))

	enrolled, err = repo.Exists(userID, course.ID)
	require.NoError(t, err)
	assert.True(t, enrolled)
}

func TestUpdateProgressSetsAndClearsCompletion(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEnrollmentRepository(db)
	userID := model.GenerateUUID()
	course := createCourse(t, db, true)

	require.NoError(t, repo.Create(&model.Enrollment{
		UserID:     userID,
		CourseID:   course.ID,
		EnrolledAt: time.Now(),
	}))

	now := time.Now()
	require.NoError(t, repo.UpdateProgress(userID, course.ID, 100, &now))

	enrollment, err := repo.Find(userID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, enrollment.Progress)
	require.NotNil(t, enrollment.CompletedAt)

	// A lesson added to a completed course drops the percentage again.
	require.NoError(t, repo.UpdateProgress(userID, course.ID, 75, nil))

	enrollment, err = repo.Find(userID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 75, enrollment.Progress)
	assert.Nil(t, enrollment.CompletedAt)
}

func TestCountByCourse(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEnrollmentRepository(db)
	course := createCourse(t, db, true)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(&model.Enrollment{
			UserID:     model.GenerateUUID(),
			CourseID:   course.ID,
			EnrolledAt: time.Now(),
		}))
	}

	count, err := repo.CountByCourse(course.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
