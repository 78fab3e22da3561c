package repository

import (
	"testing"

	"course_market_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceForCourseRewritesOrderIndex(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLessonRepository(db)
	course := createCourse(t, db, true)
	createLessons(t, db, course.ID, 3)

	// Replace with two lessons carrying gapped, out-of-band indexes.
	replaced, err := repo.ReplaceForCourse(course.ID, []model.Lesson{
		{Title: "Intro", OrderIndex: 7},
		{Title: "Setup", OrderIndex: 2},
	})
	require.NoError(t, err)
	require.Len(t, replaced, 2)

	stored, err := repo.FindByCourse(course.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	assert.Equal(t, "Intro", stored[0].Title)
	assert.Equal(t, 1, stored[0].OrderIndex)
	assert.Equal(t, "Setup", stored[1].Title)
	assert.Equal(t, 2, stored[1].OrderIndex)
}

func TestReplaceForCourseWithEmptySetClearsLessons(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLessonRepository(db)
	course := createCourse(t, db, true)
	createLessons(t, db, course.ID, 2)

	_, err := repo.ReplaceForCourse(course.ID, nil)
	require.NoError(t, err)

	count, err := repo.CountByCourse(course.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestReplaceForCourseLeavesOtherCoursesAlone(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLessonRepository(db)
	course := createCourse(t, db, true)
	other := createCourse(t, db, true)
	createLessons(t, db, course.ID, 2)
	createLessons(t, db, other.ID, 3)

	_, err := repo.ReplaceForCourse(course.ID, []model.Lesson{{Title: "Only"}})
	require.NoError(t, err)

	count, err := repo.CountByCourse(other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestFindByCourseOrdersByIndex(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLessonRepository(db)
	course := createCourse(t, db, true)

	for _, l := range []model.Lesson{
		{CourseID: course.ID, Title: "Third", OrderIndex: 3},
		{CourseID: course.ID, Title: "First", OrderIndex: 1},
		{CourseID: course.ID, Title: "Second", OrderIndex: 2},
	} {
		lesson := l
		require.NoError(t, db.Create(&lesson).Error)
	}

	lessons, err := repo.FindByCourse(course.ID)
	require.NoError(t, err)
	require.Len(t, lessons, 3)
	assert.Equal(t, "First", lessons[0].Title)
	assert.Equal(t, "Second", lessons[1].Title)
	assert.Equal(t, "Third", lessons[2].Title)
}
