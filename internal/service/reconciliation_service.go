package service

import (
	"course_market_backend/internal/model"
	"course_market_backend/internal/repository"
	"course_market_backend/pkg/logger"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ReconciliationService recomputes the denormalized enrollment progress from
// fresh lesson-progress reads. Interleaved mark-complete calls from multiple
// devices can leave the cached percentage behind the row data; the nightly
// pass converges it.
type ReconciliationService struct {
	EnrollmentRepo     *repository.EnrollmentRepository
	LessonRepo         *repository.LessonRepository
	LessonProgressRepo *repository.LessonProgressRepository
	cron               *cron.Cron
}

func NewReconciliationService(
	enrollmentRepo *repository.EnrollmentRepository,
	lessonRepo *repository.LessonRepository,
	lessonProgressRepo *repository.LessonProgressRepository,
) *ReconciliationService {
	return &ReconciliationService{
		EnrollmentRepo:     enrollmentRepo,
		LessonRepo:         lessonRepo,
		LessonProgressRepo: lessonProgressRepo,
	}
}

// Start schedules the nightly run at 03:00.
func (s *ReconciliationService) Start() {
	s.cron = cron.New()
	s.cron.AddFunc("0 3 * * *", func() {
		if err := s.ReconcileAll(); err != nil {
			logger.Log.Error("Progress reconciliation failed", zap.Error(err))
		}
	})
	s.cron.Start()
	logger.Log.Info("Progress reconciliation scheduled", zap.String("schedule", "daily 03:00"))
}

func (s *ReconciliationService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// ReconcileAll walks every enrollment and rewrites progress/completed_at from
// the current completion set. Certificates are not touched here; issuance
// stays an online-path decision.
func (s *ReconciliationService) ReconcileAll() error {
	var enrollments []model.Enrollment
	if err := s.EnrollmentRepo.DB.Find(&enrollments).Error; err != nil {
		return wrapDBError(err)
	}

	updated := 0
	for _, e := range enrollments {
		lessons, err := s.LessonRepo.FindByCourse(e.CourseID)
		if err != nil {
			logger.Log.Warn("Reconciliation skipped enrollment",
				zap.String("enrollment", e.ID), zap.Error(err))
			continue
		}
		lessonIDs := make([]string, len(lessons))
		for i, l := range lessons {
			lessonIDs[i] = l.ID
		}

		completedIDs, err := s.LessonProgressRepo.CompletedLessonIDs(e.UserID, lessonIDs)
		if err != nil {
			logger.Log.Warn("Reconciliation skipped enrollment",
				zap.String("enrollment", e.ID), zap.Error(err))
			continue
		}

		summary := ComputeProgress(len(lessons), completedIDs)

		completedAt := e.CompletedAt
		if summary.IsComplete && completedAt == nil {
			now := time.Now()
			completedAt = &now
		}

		if summary.Percentage == e.Progress && (completedAt == e.CompletedAt) {
			continue
		}

		if err := s.EnrollmentRepo.UpdateProgress(e.UserID, e.CourseID, summary.Percentage, completedAt); err != nil {
			logger.Log.Warn("Reconciliation update failed",
				zap.String("enrollment", e.ID), zap.Error(err))
			continue
		}
		updated++
	}

	logger.Log.Info("Progress reconciliation finished",
		zap.Int("enrollments", len(enrollments)), zap.Int("updated", updated))
	return nil
}
