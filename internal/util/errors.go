package util

import "errors"

// Error kinds every data-access failure is translated into before it reaches
// a controller. Raw gorm/transport errors never leave the service layer.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrPersistence   = errors.New("data store rejected the operation")
	ErrAuthRequired  = errors.New("authentication required")
	ErrAlreadyExists = errors.New("record already exists")

	ErrEmailRegistered    = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrNotEnrolled        = errors.New("not enrolled in this course")
	ErrCourseNotPublished = errors.New("course is not published")
	ErrInvalidVideoExt    = errors.New("unsupported video file extension")
	ErrInvalidImageType   = errors.New("unsupported image type")
)
