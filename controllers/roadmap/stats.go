package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/services/enrollment"

	"github.com/gofiber/fiber/v2"
)

// GetUserLearningStreak returns the user's consecutive-day completion streak
func GetUserLearningStreak(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	svc := enrollment.NewService(database.Database.Db)
	streak, err := svc.LearningStreak(userID)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Learning streak fetched successfully!", fiber.Map{
		"streak": streak,
	})
}

// GetUserStats returns aggregate statistics over the user's enrollments
func GetUserStats(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	svc := enrollment.NewService(database.Database.Db)
	stats, err := svc.UserStats(userID)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User stats fetched successfully!", stats)
}

// GetRoadmapCompletionRate returns the share of completed enrollments for a
// roadmap
func GetRoadmapCompletionRate(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	roadmapID := c.Locals("roadmapID").(uint)

	svc := enrollment.NewService(database.Database.Db)
	rate, err := svc.RoadmapCompletionRate(roadmapID)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Completion rate fetched successfully!", fiber.Map{
		"completion_rate": rate,
	})
}
