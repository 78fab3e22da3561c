package service

import (
	"course_market_backend/internal/model"
	"course_market_backend/internal/repository"
	"course_market_backend/internal/util"
	"course_market_backend/pkg/monitoring"
	"errors"
	"time"

	"gorm.io/gorm"
)

type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	CourseRepo     *repository.CourseRepository
	LessonRepo     *repository.LessonRepository
	UserRepo       *repository.UserRepository
	Mail           *MailService
}

func NewEnrollmentService(
	enrollmentRepo *repository.EnrollmentRepository,
	courseRepo *repository.CourseRepository,
	lessonRepo *repository.LessonRepository,
	userRepo *repository.UserRepository,
	mail *MailService,
) *EnrollmentService {
	return &EnrollmentService{
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
		LessonRepo:     lessonRepo,
		UserRepo:       userRepo,
		Mail:           mail,
	}
}

// IsEnrolled gates access to a course's lesson content. A data-access failure
// comes back as an error, never as "not enrolled".
func (s *EnrollmentService) IsEnrolled(userID, courseID string) (bool, error) {
	enrolled, err := s.EnrollmentRepo.Exists(userID, courseID)
	if err != nil {
		return false, wrapDBError(err)
	}
	return enrolled, nil
}

// Enroll creates the enrollment for (user, course). A second call reports
// ErrAlreadyExists instead of a new row; the unique index catches the window
// where two concurrent calls both pass the existence check.
func (s *EnrollmentService) Enroll(userID, courseID string) (*model.Enrollment, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, wrapDBError(err)
	}
	if !course.IsPublished {
		return nil, util.ErrCourseNotPublished
	}

	if _, err := s.EnrollmentRepo.Find(userID, courseID); err == nil {
		return nil, util.ErrAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, wrapDBError(err)
	}

	enrollment := &model.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		EnrolledAt: time.Now(),
	}
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		if _, findErr := s.EnrollmentRepo.Find(userID, courseID); findErr == nil {
			return nil, util.ErrAlreadyExists
		}
		return nil, wrapDBError(err)
	}

	monitoring.EnrollmentCounter.Inc()

	if user, err := s.UserRepo.FindByID(userID); err == nil {
		s.Mail.SendEnrollmentConfirmation(user.Email, user.FullName, course.Title)
	}

	return enrollment, nil
}

// EnrolledCourse is one row of the student dashboard.
type EnrolledCourse struct {
	Course      model.Course `json:"course"`
	LessonCount int          `json:"lessonCount"`
	Progress    int          `json:"progress"`
	EnrolledAt  time.Time    `json:"enrolledAt"`
	Completed   bool         `json:"completed"`
}

// GetEnrolledCourses builds the "My Courses" view. The progress shown here is
// the denormalized value kept on the enrollment; the course viewer always
// recomputes from fresh lesson-progress reads.
func (s *EnrollmentService) GetEnrolledCourses(userID string) ([]EnrolledCourse, error) {
	enrollments, err := s.EnrollmentRepo.FindByUser(userID)
	if err != nil {
		return nil, wrapDBError(err)
	}

	courseIDs := make([]string, 0, len(enrollments))
	for _, e := range enrollments {
		courseIDs = append(courseIDs, e.CourseID)
	}

	courses, err := s.CourseRepo.FindByIDs(courseIDs)
	if err != nil {
		return nil, wrapDBError(err)
	}
	courseByID := make(map[string]model.Course, len(courses))
	for _, c := range courses {
		courseByID[c.ID] = c
	}

	result := make([]EnrolledCourse, 0, len(enrollments))
	for _, e := range enrollments {
		course, ok := courseByID[e.CourseID]
		if !ok {
			// Course deleted by its instructor after enrollment.
			continue
		}

		count, err := s.LessonRepo.CountByCourse(course.ID)
		if err != nil {
			return nil, wrapDBError(err)
		}

		result = append(result, EnrolledCourse{
			Course:      course,
			LessonCount: int(count),
			Progress:    e.Progress,
			EnrolledAt:  e.EnrolledAt,
			Completed:   e.CompletedAt != nil,
		})
	}

	return result, nil
}
