package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services/enrollment"

	"github.com/gofiber/fiber/v2"
)

// RecordLessonProgress upserts the user's progress for a lesson and
// recalculates the enrollment aggregates in the same transaction
func RecordLessonProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	lessonID := c.Locals("lessonID").(uint)

	reqData, ok := c.Locals("validatedLessonProgress").(*struct {
		Score       *float64 `json:"score" validate:"omitempty,gte=0,lte=100"`
		IsCompleted bool     `json:"is_completed"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	svc := enrollment.NewService(database.Database.Db)
	row, err := svc.RecordLessonProgress(userID, lessonID, reqData.Score, reqData.IsCompleted)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson progress recorded successfully!", row)
}

// RecalculateProgress rederives the enrollment aggregates from lesson progress
func RecalculateProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	roadmapID := c.Locals("roadmapID").(uint)

	svc := enrollment.NewService(database.Database.Db)
	enr, err := svc.Recalculate(userID, roadmapID)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress recalculated successfully!", enr)
}

// UpdateProgressManually overrides the enrollment's derived progress fields.
// The next recalculation overwrites the override.
func UpdateProgressManually(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	roadmapID := c.Locals("roadmapID").(uint)

	reqData, ok := c.Locals("validatedManualProgress").(*struct {
		Progress     float64  `json:"progress" validate:"gte=0,lte=100"`
		AverageScore *float64 `json:"average_score" validate:"omitempty,gte=0,lte=100"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	svc := enrollment.NewService(database.Database.Db)
	enr, err := svc.UpdateProgressManually(userID, roadmapID, reqData.Progress, reqData.AverageScore)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", enr)
}

// ResetProgress deletes the user's lesson progress under the roadmap and
// recalculates the enrollment
func ResetProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	roadmapID := c.Locals("roadmapID").(uint)

	svc := enrollment.NewService(database.Database.Db)
	enr, err := svc.ResetProgress(userID, roadmapID)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress reset successfully!", enr)
}
