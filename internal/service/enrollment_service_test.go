package service

import (
	"testing"

	"course_market_backend/internal/model"
	"course_market_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollCreatesEnrollment(t *testing.T) {
	env := newTestEnv(t)
	course, _ := env.createCourse(t, true, 2)
	userID := model.GenerateUUID()

	enrollment, err := env.enrollment.Enroll(userID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, userID, enrollment.UserID)
	assert.Equal(t, course.ID, enrollment.CourseID)
	assert.False(t, enrollment.EnrolledAt.IsZero())

	enrolled, err := env.enrollment.IsEnrolled(userID, course.ID)
	require.NoError(t, err)
	assert.True(t, enrolled)
}

func TestEnrollTwiceReportsAlreadyExists(t *testing.T) {
	env := newTestEnv(t)
	course, _ := env.createCourse(t, true, 2)
	userID := model.GenerateUUID()

	_, err := env.enrollment.Enroll(userID, course.ID)
	require.NoError(t, err)

	_, err = env.enrollment.Enroll(userID, course.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyExists)

	var count int64
	require.NoError(t, env.db.Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, course.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEnrollRejectsUnpublishedCourse(t *testing.T) {
	env := newTestEnv(t)
	course, _ := env.createCourse(t, false, 2)

	_, err := env.enrollment.Enroll(model.GenerateUUID(), course.ID)
	assert.ErrorIs(t, err, util.ErrCourseNotPublished)
}

func TestEnrollUnknownCourse(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.enrollment.Enroll(model.GenerateUUID(), model.GenerateUUID())
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestIsEnrolledFalseForStranger(t *testing.T) {
	env := newTestEnv(t)
	course, _ := env.createCourse(t, true, 1)

	enrolled, err := env.enrollment.IsEnrolled(model.GenerateUUID(), course.ID)
	require.NoError(t, err)
	assert.False(t, enrolled)
}

func TestGetEnrolledCoursesShowsDenormalizedProgress(t *testing.T) {
	env := newTestEnv(t)
	course, lessons := env.createCourse(t, true, 2)
	userID := model.GenerateUUID()

	_, err := env.enrollment.Enroll(userID, course.ID)
	require.NoError(t, err)

	_, err = env.learning.MarkLessonComplete(userID, lessons[0].ID)
	require.NoError(t, err)

	rows, err := env.enrollment.GetEnrolledCourses(userID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, course.ID, rows[0].Course.ID)
	assert.Equal(t, 2, rows[0].LessonCount)
	assert.Equal(t, 50, rows[0].Progress)
	assert.False(t, rows[0].Completed)
}
