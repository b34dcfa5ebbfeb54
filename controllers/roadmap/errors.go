package controllers

import (
	"errors"

	"lms/middleware"
	"lms/services/enrollment"

	"github.com/gofiber/fiber/v2"
)

// serviceErrorResponse maps the enrollment service error taxonomy onto HTTP
// responses. Unknown errors are treated as server faults.
func serviceErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, enrollment.ErrUserNotFound),
		errors.Is(err, enrollment.ErrRoadmapNotFound),
		errors.Is(err, enrollment.ErrLessonNotFound),
		errors.Is(err, enrollment.ErrEnrollmentNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, capitalize(err.Error()), nil)
	case errors.Is(err, enrollment.ErrAlreadyEnrolled):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, capitalize(err.Error()), nil)
	case errors.Is(err, enrollment.ErrInvalidProgress),
		errors.Is(err, enrollment.ErrInvalidScore),
		errors.Is(err, enrollment.ErrEmptyBulkRequest),
		errors.Is(err, enrollment.ErrBulkLimitExceeded),
		errors.Is(err, enrollment.ErrNotCompleted):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, capitalize(err.Error()), nil)
	default:
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b) + "!"
}
