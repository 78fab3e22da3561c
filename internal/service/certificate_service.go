package service

import (
	"course_market_backend/internal/model"
	"course_market_backend/internal/repository"
	"course_market_backend/pkg/monitoring"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type CertificateService struct {
	CertificateRepo *repository.CertificateRepository
	CourseRepo      *repository.CourseRepository
	UserRepo        *repository.UserRepository
	Mail            *MailService
}

func NewCertificateService(
	certificateRepo *repository.CertificateRepository,
	courseRepo *repository.CourseRepository,
	userRepo *repository.UserRepository,
	mail *MailService,
) *CertificateService {
	return &CertificateService{
		CertificateRepo: certificateRepo,
		CourseRepo:      courseRepo,
		UserRepo:        userRepo,
		Mail:            mail,
	}
}

// CertificateURL is deterministic from the pair of ids, so re-issuing after a
// lost response lands on the same address.
func CertificateURL(courseID, userID string) string {
	return fmt.Sprintf("/certificate/%s/%s", courseID, userID)
}

// EnsureCertificate issues the certificate for (user, course) exactly once.
// It is invoked on every lesson completion; the existing-row check, backed by
// the unique index, is what prevents duplicate issuance. Returns nil without
// side effects while the course is incomplete.
func (s *CertificateService) EnsureCertificate(userID, courseID string, totalLessons int, completedLessonIDs []string) (*model.Certificate, error) {
	summary := ComputeProgress(totalLessons, completedLessonIDs)
	if !summary.IsComplete {
		return nil, nil
	}

	existing, err := s.CertificateRepo.Find(userID, courseID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, wrapDBError(err)
	}

	cert := &model.Certificate{
		UserID:         userID,
		CourseID:       courseID,
		CertificateURL: CertificateURL(courseID, userID),
		IssuedAt:       time.Now(),
	}
	if err := s.CertificateRepo.Create(cert); err != nil {
		// Two near-simultaneous completions of the final lesson can both
		// pass the check above; the unique index rejects the loser, and the
		// winner's row is the certificate.
		if winner, findErr := s.CertificateRepo.Find(userID, courseID); findErr == nil {
			return winner, nil
		}
		return nil, wrapDBError(err)
	}

	monitoring.CertificateCounter.Inc()
	s.notifyIssued(userID, courseID, cert.CertificateURL)

	return cert, nil
}

func (s *CertificateService) notifyIssued(userID, courseID, certificateURL string) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return
	}
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return
	}
	s.Mail.SendCertificateIssued(user.Email, user.FullName, course.Title, certificateURL)
}

// CertificateView joins everything the printable certificate page renders.
type CertificateView struct {
	Certificate *model.Certificate `json:"certificate"`
	Course      *model.Course      `json:"course"`
	Student     *model.User        `json:"student"`
}

// GetCertificateView resolves /certificate/{courseID}/{userID}.
func (s *CertificateService) GetCertificateView(courseID, userID string) (*CertificateView, error) {
	cert, err := s.CertificateRepo.Find(userID, courseID)
	if err != nil {
		return nil, wrapDBError(err)
	}

	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, wrapDBError(err)
	}

	student, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, wrapDBError(err)
	}

	// Strip fields the public page has no business seeing.
	student.Email = ""

	return &CertificateView{
		Certificate: cert,
		Course:      course,
		Student:     student,
	}, nil
}
