package service

import (
	"testing"

	"course_market_backend/internal/model"
	"course_market_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCourseStartsAsDraft(t *testing.T) {
	env := newTestEnv(t)
	instructorID := model.GenerateUUID()

	course, err := env.course.CreateCourse(instructorID, CourseInput{
		Title:       "Intro to Go",
		Description: "Learn Go",
		Category:    "programming",
		Lessons: []LessonInput{
			{Title: "Hello", Duration: 120},
			{Title: "Types", Duration: 300},
		},
	})
	require.NoError(t, err)
	assert.False(t, course.IsPublished)
	assert.Equal(t, instructorID, course.InstructorID)
	assert.Equal(t, model.LevelBeginner, course.Level)

	lessons, err := env.lessons.FindByCourse(course.ID)
	require.NoError(t, err)
	require.Len(t, lessons, 2)
	assert.Equal(t, 1, lessons[0].OrderIndex)
	assert.Equal(t, 2, lessons[1].OrderIndex)
}

func TestUpdateCourseReplacesLessonBatch(t *testing.T) {
	env := newTestEnv(t)
	instructorID := model.GenerateUUID()

	course, err := env.course.CreateCourse(instructorID, CourseInput{
		Title:       "Intro to Go",
		Description: "Learn Go",
		Category:    "programming",
		Lessons: []LessonInput{
			{Title: "Old A"},
			{Title: "Old B"},
			{Title: "Old C"},
		},
	})
	require.NoError(t, err)

	updated, err := env.course.UpdateCourse(course.ID, instructorID, model.Instructor, CourseInput{
		Title:       "Go, Revised",
		Description: "Learn Go properly",
		Category:    "programming",
		Lessons: []LessonInput{
			{Title: "New B"},
			{Title: "New A"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Go, Revised", updated.Title)

	lessons, err := env.lessons.FindByCourse(course.ID)
	require.NoError(t, err)
	require.Len(t, lessons, 2)
	assert.Equal(t, "New B", lessons[0].Title)
	assert.Equal(t, 1, lessons[0].OrderIndex)
	assert.Equal(t, "New A", lessons[1].Title)
	assert.Equal(t, 2, lessons[1].OrderIndex)
}

func TestUpdateCourseEnforcesOwnership(t *testing.T) {
	env := newTestEnv(t)

	course, err := env.course.CreateCourse(model.GenerateUUID(), CourseInput{
		Title:       "Mine",
		Description: "d",
		Category:    "c",
	})
	require.NoError(t, err)

	input := CourseInput{Title: "Stolen", Description: "d", Category: "c"}

	_, err = env.course.UpdateCourse(course.ID, model.GenerateUUID(), model.Instructor, input)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	// Admins bypass the ownership check.
	_, err = env.course.UpdateCourse(course.ID, model.GenerateUUID(), model.Admin, input)
	assert.NoError(t, err)
}

func TestSetPublishedControlsCatalogVisibility(t *testing.T) {
	env := newTestEnv(t)
	instructorID := model.GenerateUUID()

	course, err := env.course.CreateCourse(instructorID, CourseInput{
		Title:       "Hidden",
		Description: "d",
		Category:    "c",
	})
	require.NoError(t, err)

	_, err = env.catalog.GetCourseDetail(course.ID)
	assert.ErrorIs(t, err, util.ErrNotFound, "drafts are invisible to the catalog")

	require.NoError(t, env.course.SetPublished(course.ID, instructorID, model.Instructor, true))

	detail, err := env.catalog.GetCourseDetail(course.ID)
	require.NoError(t, err)
	assert.True(t, detail.Course.IsPublished)
}

func TestDeleteCourseRemovesLessons(t *testing.T) {
	env := newTestEnv(t)
	instructorID := model.GenerateUUID()

	course, err := env.course.CreateCourse(instructorID, CourseInput{
		Title:       "Doomed",
		Description: "d",
		Category:    "c",
		Lessons:     []LessonInput{{Title: "L1"}, {Title: "L2"}},
	})
	require.NoError(t, err)

	require.NoError(t, env.course.DeleteCourse(course.ID, instructorID, model.Instructor))

	_, err = env.courses.FindByID(course.ID)
	assert.Error(t, err)

	count, err := env.lessons.CountByCourse(course.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGetInstructorCoursesStats(t *testing.T) {
	env := newTestEnv(t)
	instructorID := model.GenerateUUID()

	published, err := env.course.CreateCourse(instructorID, CourseInput{
		Title: "A", Description: "d", Category: "c",
		Lessons: []LessonInput{{Title: "L1"}},
	})
	require.NoError(t, err)
	require.NoError(t, env.course.SetPublished(published.ID, instructorID, model.Instructor, true))

	_, err = env.course.CreateCourse(instructorID, CourseInput{
		Title: "B", Description: "d", Category: "c",
	})
	require.NoError(t, err)

	_, err = env.enrollment.Enroll(model.GenerateUUID(), published.ID)
	require.NoError(t, err)
	_, err = env.enrollment.Enroll(model.GenerateUUID(), published.ID)
	require.NoError(t, err)

	courses, stats, err := env.course.GetInstructorCourses(instructorID)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, 2, stats.TotalCourses)
	assert.Equal(t, 1, stats.PublishedCourses)
	assert.Equal(t, 2, stats.TotalEnrollments)
}
