package service

import (
	"testing"

	"course_market_backend/internal/model"
	"course_market_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkLessonCompleteRequiresEnrollment(t *testing.T) {
	env := newTestEnv(t)
	_, lessons := env.createCourse(t, true, 2)

	_, err := env.learning.MarkLessonComplete(model.GenerateUUID(), lessons[0].ID)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)

	var count int64
	require.NoError(t, env.db.Model(&model.LessonProgress{}).Count(&count).Error)
	assert.Zero(t, count, "gate must reject before any progress write")
}

func TestMarkLessonCompleteUnknownLesson(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.learning.MarkLessonComplete(model.GenerateUUID(), model.GenerateUUID())
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestMarkLessonCompleteProgression(t *testing.T) {
	env := newTestEnv(t)
	course, lessons := env.createCourse(t, true, 3)
	userID := model.GenerateUUID()

	_, err := env.enrollment.Enroll(userID, course.ID)
	require.NoError(t, err)

	result, err := env.learning.MarkLessonComplete(userID, lessons[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Progress.CompletedCount)
	assert.Equal(t, 33, result.Progress.Percentage)
	assert.False(t, result.Progress.IsComplete)
	assert.Nil(t, result.Certificate)

	result, err = env.learning.MarkLessonComplete(userID, lessons[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 67, result.Progress.Percentage)
	assert.Nil(t, result.Certificate)

	result, err = env.learning.MarkLessonComplete(userID, lessons[2].ID)
	require.NoError(t, err)
	assert.Equal(t, 100, result.Progress.Percentage)
	assert.True(t, result.Progress.IsComplete)
	require.NotNil(t, result.Certificate)
	assert.Equal(t, CertificateURL(course.ID, userID), result.Certificate.CertificateURL)

	// The denormalized enrollment row reflects the final state.
	enrollment, err := env.enrollments.Find(userID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, enrollment.Progress)
	assert.NotNil(t, enrollment.CompletedAt)
}

func TestMarkLessonCompleteIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	course, lessons := env.createCourse(t, true, 2)
	userID := model.GenerateUUID()

	_, err := env.enrollment.Enroll(userID, course.ID)
	require.NoError(t, err)

	first, err := env.learning.MarkLessonComplete(userID, lessons[0].ID)
	require.NoError(t, err)

	second, err := env.learning.MarkLessonComplete(userID, lessons[0].ID)
	require.NoError(t, err)

	assert.Equal(t, first.Progress, second.Progress)

	var count int64
	require.NoError(t, env.db.Model(&model.LessonProgress{}).
		Where("user_id = ?", userID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCourseViewerGatedOnEnrollment(t *testing.T) {
	env := newTestEnv(t)
	course, _ := env.createCourse(t, true, 2)

	_, err := env.learning.GetCourseViewer(model.GenerateUUID(), course.ID)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)
}

func TestCourseViewerContent(t *testing.T) {
	env := newTestEnv(t)
	course, lessons := env.createCourse(t, true, 3)
	userID := model.GenerateUUID()

	_, err := env.enrollment.Enroll(userID, course.ID)
	require.NoError(t, err)

	_, err = env.learning.MarkLessonComplete(userID, lessons[1].ID)
	require.NoError(t, err)

	content, err := env.learning.GetCourseViewer(userID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, course.ID, content.Course.ID)
	require.Len(t, content.Lessons, 3)
	assert.Equal(t, []string{lessons[1].ID}, content.CompletedLessonIDs)
	assert.Equal(t, 33, content.Progress.Percentage)
	assert.Nil(t, content.Certificate)
}

func TestRecordWatchTimeGatedAndAccumulating(t *testing.T) {
	env := newTestEnv(t)
	course, lessons := env.createCourse(t, true, 1)
	userID := model.GenerateUUID()

	err := env.learning.RecordWatchTime(userID, lessons[0].ID, 30)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)

	_, err = env.enrollment.Enroll(userID, course.ID)
	require.NoError(t, err)

	require.NoError(t, env.learning.RecordWatchTime(userID, lessons[0].ID, 30))
	require.NoError(t, env.learning.RecordWatchTime(userID, lessons[0].ID, 15))

	var row model.LessonProgress
	require.NoError(t, env.db.Where("user_id = ? AND lesson_id = ?", userID, lessons[0].ID).First(&row).Error)
	assert.Equal(t, 45, row.WatchTime)
	assert.Nil(t, row.CompletedAt)

	// Watch time alone never completes a course.
	content, err := env.learning.GetCourseViewer(userID, course.ID)
	require.NoError(t, err)
	assert.False(t, content.Progress.IsComplete)
}
