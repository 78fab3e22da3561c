package service

import (
	"course_market_backend/internal/model"
	"course_market_backend/internal/repository"
	"course_market_backend/internal/util"
	"course_market_backend/pkg/monitoring"
	"time"
)

// LearningService drives the course viewer: the per-user+course workflow
// NOT_STARTED -> IN_PROGRESS -> COMPLETE_UNCERTIFIED -> CERTIFIED. The last
// transition is owned by CertificateService; lessons cannot be uncompleted,
// so there is no way back.
type LearningService struct {
	CourseRepo         *repository.CourseRepository
	LessonRepo         *repository.LessonRepository
	EnrollmentRepo     *repository.EnrollmentRepository
	LessonProgressRepo *repository.LessonProgressRepository
	CertificateRepo    *repository.CertificateRepository
	Enrollment         *EnrollmentService
	Certificate        *CertificateService
}

func NewLearningService(
	courseRepo *repository.CourseRepository,
	lessonRepo *repository.LessonRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	lessonProgressRepo *repository.LessonProgressRepository,
	certificateRepo *repository.CertificateRepository,
	enrollment *EnrollmentService,
	certificate *CertificateService,
) *LearningService {
	return &LearningService{
		CourseRepo:         courseRepo,
		LessonRepo:         lessonRepo,
		EnrollmentRepo:     enrollmentRepo,
		LessonProgressRepo: lessonProgressRepo,
		CertificateRepo:    certificateRepo,
		Enrollment:         enrollment,
		Certificate:        certificate,
	}
}

// CourseViewerContent is everything the viewer page needs in one response:
// course, ordered lessons, the user's completion set, derived progress and
// the certificate if one exists.
type CourseViewerContent struct {
	Course             *model.Course      `json:"course"`
	Lessons            []model.Lesson     `json:"lessons"`
	CompletedLessonIDs []string           `json:"completedLessonIds"`
	Progress           ProgressSummary    `json:"progress"`
	Certificate        *model.Certificate `json:"certificate,omitempty"`
}

// GetCourseViewer loads the viewer content, gated on enrollment. Unenrolled
// users get ErrNotEnrolled and no progress or certificate rows are touched.
func (s *LearningService) GetCourseViewer(userID, courseID string) (*CourseViewerContent, error) {
	enrolled, err := s.Enrollment.IsEnrolled(userID, courseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}

	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, wrapDBError(err)
	}

	lessons, err := s.LessonRepo.FindByCourse(courseID)
	if err != nil {
		return nil, wrapDBError(err)
	}

	lessonIDs := make([]string, len(lessons))
	for i, l := range lessons {
		lessonIDs[i] = l.ID
	}

	completedIDs, err := s.LessonProgressRepo.CompletedLessonIDs(userID, lessonIDs)
	if err != nil {
		return nil, wrapDBError(err)
	}

	content := &CourseViewerContent{
		Course:             course,
		Lessons:            lessons,
		CompletedLessonIDs: completedIDs,
		Progress:           ComputeProgress(len(lessons), completedIDs),
	}

	if cert, err := s.CertificateRepo.Find(userID, courseID); err == nil {
		content.Certificate = cert
	}

	return content, nil
}

// MarkCompleteResult reports the state after one completion event.
type MarkCompleteResult struct {
	Progress    ProgressSummary    `json:"progress"`
	Certificate *model.Certificate `json:"certificate,omitempty"`
}

// MarkLessonComplete records the completion, recomputes progress from a fresh
// read of the completion set (never from a cached count), pushes the
// denormalized percentage onto the enrollment, and hands the fresh state to
// the certificate issuer. It runs on every completion event, not only the
// final one; idempotency lives in the upsert and in the issuer.
func (s *LearningService) MarkLessonComplete(userID, lessonID string) (*MarkCompleteResult, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		return nil, wrapDBError(err)
	}

	enrolled, err := s.Enrollment.IsEnrolled(userID, lesson.CourseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}

	if err := s.LessonProgressRepo.MarkComplete(userID, lessonID); err != nil {
		return nil, wrapDBError(err)
	}
	monitoring.LessonCompletionCounter.Inc()

	lessons, err := s.LessonRepo.FindByCourse(lesson.CourseID)
	if err != nil {
		return nil, wrapDBError(err)
	}
	lessonIDs := make([]string, len(lessons))
	for i, l := range lessons {
		lessonIDs[i] = l.ID
	}

	completedIDs, err := s.LessonProgressRepo.CompletedLessonIDs(userID, lessonIDs)
	if err != nil {
		return nil, wrapDBError(err)
	}

	summary := ComputeProgress(len(lessons), completedIDs)

	var completedAt *time.Time
	if summary.IsComplete {
		now := time.Now()
		completedAt = &now
	}
	if err := s.EnrollmentRepo.UpdateProgress(userID, lesson.CourseID, summary.Percentage, completedAt); err != nil {
		return nil, wrapDBError(err)
	}

	cert, err := s.Certificate.EnsureCertificate(userID, lesson.CourseID, len(lessons), completedIDs)
	if err != nil {
		// Completion is recorded; certificate issuance failed and can be
		// retried on the next invocation without re-deriving anything here.
		return nil, err
	}

	return &MarkCompleteResult{
		Progress:    summary,
		Certificate: cert,
	}, nil
}

// RecordWatchTime accumulates player-reported seconds for a lesson. Gated the
// same way as completion.
func (s *LearningService) RecordWatchTime(userID, lessonID string, seconds int) error {
	if seconds <= 0 {
		return nil
	}

	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		return wrapDBError(err)
	}

	enrolled, err := s.Enrollment.IsEnrolled(userID, lesson.CourseID)
	if err != nil {
		return err
	}
	if !enrolled {
		return util.ErrNotEnrolled
	}

	if err := s.LessonProgressRepo.AddWatchTime(userID, lessonID, seconds); err != nil {
		return wrapDBError(err)
	}
	return nil
}
