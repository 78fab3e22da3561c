package service

import (
	"testing"

	"course_market_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileAllHealsDriftedProgress(t *testing.T) {
	env := newTestEnv(t)
	course, lessons := env.createCourse(t, true, 2)
	userID := model.GenerateUUID()

	_, err := env.enrollment.Enroll(userID, course.ID)
	require.NoError(t, err)
	_, err = env.learning.MarkLessonComplete(userID, lessons[0].ID)
	require.NoError(t, err)

	// Simulate drift in the denormalized column.
	require.NoError(t, env.enrollments.UpdateProgress(userID, course.ID, 0, nil))

	require.NoError(t, env.reconciler.ReconcileAll())

	enrollment, err := env.enrollments.Find(userID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, enrollment.Progress)
	assert.Nil(t, enrollment.CompletedAt)
}

func TestReconcileAllBackfillsCompletion(t *testing.T) {
	env := newTestEnv(t)
	course, lessons := env.createCourse(t, true, 1)
	userID := model.GenerateUUID()

	_, err := env.enrollment.Enroll(userID, course.ID)
	require.NoError(t, err)

	// A completion row written without the denormalization step.
	require.NoError(t, env.progress.MarkComplete(userID, lessons[0].ID))

	require.NoError(t, env.reconciler.ReconcileAll())

	enrollment, err := env.enrollments.Find(userID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, enrollment.Progress)
	assert.NotNil(t, enrollment.CompletedAt)
}
