package service

import (
	"path/filepath"
	"testing"

	"course_market_backend/internal/config"
	"course_market_backend/internal/model"
	"course_market_backend/internal/repository"
	"course_market_backend/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testEnv wires the learning stack against an on-disk sqlite database. Mail
// is disabled; the user lookups that feed it fail softly against the absent
// profiles table, which is exactly the guarded path.
type testEnv struct {
	db          *gorm.DB
	courses     *repository.CourseRepository
	lessons     *repository.LessonRepository
	enrollments *repository.EnrollmentRepository
	progress    *repository.LessonProgressRepository
	certs       *repository.CertificateRepository

	catalog     *CatalogService
	course      *CourseService
	enrollment  *EnrollmentService
	certificate *CertificateService
	learning    *LearningService
	reconciler  *ReconciliationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if logger.Log == nil {
		logger.Log = zap.NewNop()
	}

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Course{},
		&model.Lesson{},
		&model.Enrollment{},
		&model.LessonProgress{},
		&model.Certificate{},
	))

	env := &testEnv{
		db:          db,
		courses:     repository.NewCourseRepository(db),
		lessons:     repository.NewLessonRepository(db),
		enrollments: repository.NewEnrollmentRepository(db),
		progress:    repository.NewLessonProgressRepository(db),
		certs:       repository.NewCertificateRepository(db),
	}

	users := repository.NewUserRepository(db)
	mail := NewMailService(&config.Config{})

	env.catalog = NewCatalogService(env.courses, env.lessons, env.enrollments, users, nil)
	env.course = NewCourseService(env.courses, env.lessons, env.enrollments, env.catalog)
	env.enrollment = NewEnrollmentService(env.enrollments, env.courses, env.lessons, users, mail)
	env.certificate = NewCertificateService(env.certs, env.courses, users, mail)
	env.learning = NewLearningService(
		env.courses,
		env.lessons,
		env.enrollments,
		env.progress,
		env.certs,
		env.enrollment,
		env.certificate,
	)
	env.reconciler = NewReconciliationService(env.enrollments, env.lessons, env.progress)

	return env
}

func (e *testEnv) createCourse(t *testing.T, published bool, lessonCount int) (*model.Course, []model.Lesson) {
	t.Helper()

	course := &model.Course{
		InstructorID: model.GenerateUUID(),
		Title:        "Distributed Systems",
		Description:  "A course",
		Category:     "programming",
		IsPublished:  published,
	}
	require.NoError(t, e.db.Create(course).Error)

	lessons := make([]model.Lesson, lessonCount)
	for i := range lessons {
		lessons[i] = model.Lesson{
			CourseID:   course.ID,
			Title:      "Lesson",
			OrderIndex: i + 1,
		}
	}
	if lessonCount > 0 {
		require.NoError(t, e.db.Create(&lessons).Error)
	}

	return course, lessons
}
