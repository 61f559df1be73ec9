package util

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRegistered      = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrCourseNotFound       = errors.New("course not found")
	ErrCourseNotPublished   = errors.New("course is not available for enrollment")
	ErrAlreadyEnrolled      = errors.New("already enrolled in this course")
	ErrNotEnrolled          = errors.New("not enrolled in this course")
	ErrLessonNotFound       = errors.New("lesson not found")
	ErrQuizNotFound         = errors.New("quiz not found")
	ErrQuizExists           = errors.New("lesson already has a quiz")
	ErrEnrollmentNotFound   = errors.New("enrollment not found")
	ErrAttemptLimitExceeded = errors.New("maximum attempts reached")
)
