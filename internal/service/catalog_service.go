package service

import (
	"course_market_backend/internal/model"
	"course_market_backend/internal/repository"
	"course_market_backend/internal/util"
	"course_market_backend/pkg/logger"
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	catalogCacheKey = "catalog:published"
	catalogCacheTTL = 5 * time.Minute
)

// CatalogService serves the public browsing surface: the published-course
// listing (cached in Redis, invalidated on any course mutation) and the
// course detail page.
type CatalogService struct {
	CourseRepo     *repository.CourseRepository
	LessonRepo     *repository.LessonRepository
	EnrollmentRepo *repository.EnrollmentRepository
	UserRepo       *repository.UserRepository
	Redis          *redis.Client
}

func NewCatalogService(
	courseRepo *repository.CourseRepository,
	lessonRepo *repository.LessonRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	userRepo *repository.UserRepository,
	rdb *redis.Client,
) *CatalogService {
	return &CatalogService{
		CourseRepo:     courseRepo,
		LessonRepo:     lessonRepo,
		EnrollmentRepo: enrollmentRepo,
		UserRepo:       userRepo,
		Redis:          rdb,
	}
}

// CatalogCourse is one card of the browse page.
type CatalogCourse struct {
	Course          model.Course `json:"course"`
	InstructorName  string       `json:"instructorName"`
	LessonCount     int          `json:"lessonCount"`
	EnrollmentCount int          `json:"enrollmentCount"`
}

// ListPublished returns the browsable catalog, from cache when possible.
// Cache failures fall through to the database; browsing never breaks because
// Redis is down.
func (s *CatalogService) ListPublished(ctx context.Context) ([]CatalogCourse, error) {
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, catalogCacheKey).Result(); err == nil {
			var result []CatalogCourse
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				return result, nil
			}
		}
	}

	courses, err := s.CourseRepo.FindPublished()
	if err != nil {
		return nil, wrapDBError(err)
	}

	result := make([]CatalogCourse, len(courses))
	for i, c := range courses {
		lessonCount, err := s.LessonRepo.CountByCourse(c.ID)
		if err != nil {
			return nil, wrapDBError(err)
		}
		enrollmentCount, err := s.EnrollmentRepo.CountByCourse(c.ID)
		if err != nil {
			return nil, wrapDBError(err)
		}

		instructorName := ""
		if instructor, err := s.UserRepo.FindByID(c.InstructorID); err == nil {
			instructorName = instructor.FullName
		}

		result[i] = CatalogCourse{
			Course:          c,
			InstructorName:  instructorName,
			LessonCount:     int(lessonCount),
			EnrollmentCount: int(enrollmentCount),
		}
	}

	if s.Redis != nil {
		if data, err := json.Marshal(result); err == nil {
			if err := s.Redis.Set(ctx, catalogCacheKey, data, catalogCacheTTL).Err(); err != nil {
				logger.Log.Warn("Failed to cache catalog", zap.Error(err))
			}
		}
	}

	return result, nil
}

// InvalidateCache drops the published listing after any course mutation.
func (s *CatalogService) InvalidateCache() {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), catalogCacheKey).Err(); err != nil {
		logger.Log.Warn("Failed to invalidate catalog cache", zap.Error(err))
	}
}

// CourseDetail is the pre-enrollment detail page: course, instructor, lesson
// outline (titles and durations, no video URLs) and enrollment count.
type CourseDetail struct {
	Course          *model.Course `json:"course"`
	InstructorName  string        `json:"instructorName"`
	InstructorBio   string        `json:"instructorBio"`
	Lessons         []LessonBrief `json:"lessons"`
	EnrollmentCount int           `json:"enrollmentCount"`
}

// LessonBrief deliberately omits the video URL; lesson content stays behind
// the enrollment gate.
type LessonBrief struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Duration   int    `json:"duration"`
	OrderIndex int    `json:"orderIndex"`
}

func (s *CatalogService) GetCourseDetail(courseID string) (*CourseDetail, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, wrapDBError(err)
	}
	if !course.IsPublished {
		return nil, util.ErrNotFound
	}

	lessons, err := s.LessonRepo.FindByCourse(courseID)
	if err != nil {
		return nil, wrapDBError(err)
	}
	briefs := make([]LessonBrief, len(lessons))
	for i, l := range lessons {
		briefs[i] = LessonBrief{
			ID:         l.ID,
			Title:      l.Title,
			Duration:   l.Duration,
			OrderIndex: l.OrderIndex,
		}
	}

	enrollmentCount, err := s.EnrollmentRepo.CountByCourse(courseID)
	if err != nil {
		return nil, wrapDBError(err)
	}

	detail := &CourseDetail{
		Course:          course,
		Lessons:         briefs,
		EnrollmentCount: int(enrollmentCount),
	}

	if instructor, err := s.UserRepo.FindByID(course.InstructorID); err == nil {
		detail.InstructorName = instructor.FullName
		detail.InstructorBio = instructor.Bio
	}

	return detail, nil
}
