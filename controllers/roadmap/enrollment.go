package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services/enrollment"

	"github.com/gofiber/fiber/v2"
)

// EnrollInRoadmap enrolls the authenticated user into a roadmap
func EnrollInRoadmap(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	roadmapID := c.Locals("roadmapID").(uint)

	svc := enrollment.NewService(database.Database.Db)
	enr, err := svc.Enroll(userID, roadmapID)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in roadmap successfully!", enr)
}

// UnenrollFromRoadmap removes the user's enrollment and all their progress
// under the roadmap
func UnenrollFromRoadmap(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	roadmapID := c.Locals("roadmapID").(uint)

	svc := enrollment.NewService(database.Database.Db)
	removed, err := svc.Unenroll(userID, roadmapID)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	if !removed {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "User was not enrolled in this roadmap.", fiber.Map{
			"removed": false,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Unenrolled from roadmap successfully!", fiber.Map{
		"removed": true,
	})
}

// GetEnrollmentDetails returns the user's enrollment for a roadmap
func GetEnrollmentDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	roadmapID := c.Locals("roadmapID").(uint)

	svc := enrollment.NewService(database.Database.Db)
	enr, err := svc.GetEnrollment(userID, roadmapID)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment fetched successfully!", enr)
}

// IsUserEnrolled reports whether the user is enrolled in a roadmap
func IsUserEnrolled(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	roadmapID := c.Locals("roadmapID").(uint)

	svc := enrollment.NewService(database.Database.Db)
	enrolled, err := svc.IsEnrolled(userID, roadmapID)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment status fetched successfully!", fiber.Map{
		"is_enrolled": enrolled,
	})
}

// GetUserEnrollments lists the user's enrollments with an optional status
// filter (all, active, completed)
func GetUserEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	status, _ := c.Locals("enrollmentStatus").(string)

	svc := enrollment.NewService(database.Database.Db)
	enrollments, err := svc.ListEnrollments(userID, status)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
		"total":       len(enrollments),
	})
}
