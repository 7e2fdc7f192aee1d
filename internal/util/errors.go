package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserDisabled       = errors.New("user disabled")
	ErrInvalidRole        = errors.New("invalid role")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrStudentNotFound    = errors.New("student not found")
	ErrTeacherNotFound    = errors.New("teacher not found")
	ErrTeacherRequired    = errors.New("teacherId is required when an admin creates a course")
	ErrCourseNotFound     = errors.New("course not found")
	ErrGameNotFound       = errors.New("game not found")
	ErrGameExists         = errors.New("game already exists")
	ErrLevelNotFound      = errors.New("level not found")
	ErrLevelExists        = errors.New("level already exists for this game")
	ErrInvalidAttempt     = errors.New("invalid attempt")
)
