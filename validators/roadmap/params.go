package roadmapValidator

import (
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// parseIDParam validates a positive integer path parameter
func parseIDParam(c *fiber.Ctx, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Params(name))
	if raw == "" {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// RoadmapID validates the ":id" path parameter
func RoadmapID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Roadmap ID!", nil)
		}

		c.Locals("roadmapID", id)
		return c.Next()
	}
}

// LessonID validates the ":lesson_id" path parameter
func LessonID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "lesson_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
		}

		c.Locals("lessonID", id)
		return c.Next()
	}
}

// EnrollmentStatus validates the optional "status" query parameter
func EnrollmentStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := strings.ToLower(strings.TrimSpace(c.Query("status")))

		switch status {
		case "", "all", "active", "completed":
		default:
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid status filter! Use active, completed or all.", nil)
		}

		c.Locals("enrollmentStatus", status)
		return c.Next()
	}
}
