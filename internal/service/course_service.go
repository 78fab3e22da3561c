package service

import (
	"course_market_backend/internal/model"
	"course_market_backend/internal/repository"
	"course_market_backend/internal/util"
)

// CourseService covers the instructor side: drafting, editing, publishing and
// deleting courses, with the lesson set saved as a batch alongside the course.
type CourseService struct {
	CourseRepo     *repository.CourseRepository
	LessonRepo     *repository.LessonRepository
	EnrollmentRepo *repository.EnrollmentRepository
	Catalog        *CatalogService
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	lessonRepo *repository.LessonRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	catalog *CatalogService,
) *CourseService {
	return &CourseService{
		CourseRepo:     courseRepo,
		LessonRepo:     lessonRepo,
		EnrollmentRepo: enrollmentRepo,
		Catalog:        catalog,
	}
}

type LessonInput struct {
	Title    string `json:"title" binding:"required"`
	VideoURL string `json:"videoUrl"`
	Duration int    `json:"duration"`
}

type CourseInput struct {
	Title            string            `json:"title" binding:"required"`
	Description      string            `json:"description" binding:"required"`
	Category         string            `json:"category" binding:"required"`
	Price            float64           `json:"price"`
	Level            model.CourseLevel `json:"level"`
	ThumbnailURL     string            `json:"thumbnailUrl"`
	WhatYouWillLearn []string          `json:"whatYouWillLearn"`
	Requirements     []string          `json:"requirements"`
	Lessons          []LessonInput     `json:"lessons"`
}

func lessonsFromInput(inputs []LessonInput) []model.Lesson {
	lessons := make([]model.Lesson, len(inputs))
	for i, in := range inputs {
		lessons[i] = model.Lesson{
			Title:    in.Title,
			VideoURL: in.VideoURL,
			Duration: in.Duration,
		}
	}
	return lessons
}

// CreateCourse creates a draft course owned by the instructor. Lessons are
// stored with order_index rewritten to 1..N in the order submitted.
func (s *CourseService) CreateCourse(instructorID string, input CourseInput) (*model.Course, error) {
	course := &model.Course{
		InstructorID:     instructorID,
		Title:            input.Title,
		Description:      input.Description,
		Category:         input.Category,
		Price:            input.Price,
		Level:            input.Level,
		ThumbnailURL:     input.ThumbnailURL,
		WhatYouWillLearn: input.WhatYouWillLearn,
		Requirements:     input.Requirements,
	}
	if course.Level == "" {
		course.Level = model.LevelBeginner
	}

	if err := s.CourseRepo.Create(course); err != nil {
		return nil, wrapDBError(err)
	}

	if _, err := s.LessonRepo.ReplaceForCourse(course.ID, lessonsFromInput(input.Lessons)); err != nil {
		return nil, wrapDBError(err)
	}

	return course, nil
}

// ownedCourse loads the course and enforces instructor ownership. Admins may
// touch any course.
func (s *CourseService) ownedCourse(courseID, callerID string, callerRole model.UserRole) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, wrapDBError(err)
	}
	if course.InstructorID != callerID && callerRole != model.Admin {
		return nil, util.ErrPermissionDenied
	}
	return course, nil
}

// UpdateCourse saves the edited course and swaps its lesson set in a batch,
// the way the edit form submits it.
func (s *CourseService) UpdateCourse(courseID, callerID string, callerRole model.UserRole, input CourseInput) (*model.Course, error) {
	course, err := s.ownedCourse(courseID, callerID, callerRole)
	if err != nil {
		return nil, err
	}

	course.Title = input.Title
	course.Description = input.Description
	course.Category = input.Category
	course.Price = input.Price
	if input.Level != "" {
		course.Level = input.Level
	}
	if input.ThumbnailURL != "" {
		course.ThumbnailURL = input.ThumbnailURL
	}
	course.WhatYouWillLearn = input.WhatYouWillLearn
	course.Requirements = input.Requirements

	if err := s.CourseRepo.Update(course); err != nil {
		return nil, wrapDBError(err)
	}

	if _, err := s.LessonRepo.ReplaceForCourse(course.ID, lessonsFromInput(input.Lessons)); err != nil {
		return nil, wrapDBError(err)
	}

	s.Catalog.InvalidateCache()
	return course, nil
}

// SetPublished toggles draft/published visibility.
func (s *CourseService) SetPublished(courseID, callerID string, callerRole model.UserRole, published bool) error {
	if _, err := s.ownedCourse(courseID, callerID, callerRole); err != nil {
		return err
	}

	if err := s.CourseRepo.SetPublished(courseID, published); err != nil {
		return wrapDBError(err)
	}

	s.Catalog.InvalidateCache()
	return nil
}

func (s *CourseService) DeleteCourse(courseID, callerID string, callerRole model.UserRole) error {
	if _, err := s.ownedCourse(courseID, callerID, callerRole); err != nil {
		return err
	}

	if err := s.CourseRepo.Delete(courseID); err != nil {
		return wrapDBError(err)
	}

	s.Catalog.InvalidateCache()
	return nil
}

// InstructorCourse is one row of the instructor dashboard.
type InstructorCourse struct {
	Course          model.Course `json:"course"`
	LessonCount     int          `json:"lessonCount"`
	EnrollmentCount int          `json:"enrollmentCount"`
}

type InstructorStats struct {
	TotalCourses     int `json:"totalCourses"`
	PublishedCourses int `json:"publishedCourses"`
	TotalEnrollments int `json:"totalEnrollments"`
}

func (s *CourseService) GetInstructorCourses(instructorID string) ([]InstructorCourse, *InstructorStats, error) {
	courses, err := s.CourseRepo.FindByInstructor(instructorID)
	if err != nil {
		return nil, nil, wrapDBError(err)
	}

	courseIDs := make([]string, len(courses))
	for i, c := range courses {
		courseIDs[i] = c.ID
	}

	enrollments, err := s.EnrollmentRepo.FindByCourses(courseIDs)
	if err != nil {
		return nil, nil, wrapDBError(err)
	}
	enrollmentCount := make(map[string]int, len(courses))
	for _, e := range enrollments {
		enrollmentCount[e.CourseID]++
	}

	stats := &InstructorStats{
		TotalCourses:     len(courses),
		TotalEnrollments: len(enrollments),
	}

	result := make([]InstructorCourse, len(courses))
	for i, c := range courses {
		if c.IsPublished {
			stats.PublishedCourses++
		}

		count, err := s.LessonRepo.CountByCourse(c.ID)
		if err != nil {
			return nil, nil, wrapDBError(err)
		}

		result[i] = InstructorCourse{
			Course:          c,
			LessonCount:     int(count),
			EnrollmentCount: enrollmentCount[c.ID],
		}
	}

	return result, stats, nil
}

// GetCourseForEdit returns the course with its ordered lessons for the edit
// form, ownership enforced.
func (s *CourseService) GetCourseForEdit(courseID, callerID string, callerRole model.UserRole) (*model.Course, []model.Lesson, error) {
	course, err := s.ownedCourse(courseID, callerID, callerRole)
	if err != nil {
		return nil, nil, err
	}

	lessons, err := s.LessonRepo.FindByCourse(courseID)
	if err != nil {
		return nil, nil, wrapDBError(err)
	}

	return course, lessons, nil
}
