package enrollment

import "errors"

// Service error taxonomy. Controllers map these onto HTTP statuses; anything
// not listed here is a repository error and bubbles up unchanged.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrRoadmapNotFound    = errors.New("roadmap not found or not active")
	ErrLessonNotFound     = errors.New("lesson not found or not active")
	ErrEnrollmentNotFound = errors.New("user is not enrolled in this roadmap")
	ErrAlreadyEnrolled    = errors.New("user already enrolled in this roadmap")
	ErrInvalidProgress    = errors.New("progress must be between 0 and 100")
	ErrInvalidScore       = errors.New("score must be between 0 and 100")
	ErrEmptyBulkRequest   = errors.New("bulk enrollment requires at least one user")
	ErrBulkLimitExceeded  = errors.New("bulk enrollment limit exceeded")
	ErrNotCompleted       = errors.New("roadmap is not completed yet")
)
