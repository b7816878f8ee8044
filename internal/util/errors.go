package util

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRegistered      = errors.New("email already registered")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrInvalidIDToken       = errors.New("invalid id token")
	ErrDomainNotAllowed     = errors.New("email domain not allowed")
	ErrCourseNotFound       = errors.New("course not found")
	ErrAlreadyEnrolled      = errors.New("already enrolled in course")
	ErrNotEnrolled          = errors.New("not enrolled in course")
	ErrStudentNotRegistered = errors.New("student registration required")
	ErrNoActiveTest         = errors.New("no active test session")
	ErrQuestionBankEmpty    = errors.New("no questions available for course")
)
