package controllers

import (
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	roadmapModels "lms/models/roadmap"
	"lms/services/enrollment"

	"github.com/gofiber/fiber/v2"
)

// BulkEnrollUsers enrolls a batch of users into a roadmap. Best-effort per
// item: failures come back alongside successes instead of aborting the batch.
func BulkEnrollUsers(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	roadmapID := c.Locals("roadmapID").(uint)

	reqData, ok := c.Locals("validatedBulkEnroll").(*struct {
		UserIDs []uint `json:"user_ids" validate:"required,min=1,dive,gt=0"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	svc := enrollment.NewService(database.Database.Db)
	result, err := svc.BulkEnroll(roadmapID, reqData.UserIDs, config.AppConfig.BulkEnrollLimit)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Bulk enrollment processed!", result)
}

// AdminGetRoadmapEnrollments lists enrollments of a roadmap with user details
func AdminGetRoadmapEnrollments(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	roadmapID := c.Locals("roadmapID").(uint)

	reqData, _ := c.Locals("validatedEnrollmentQuery").(*struct {
		Page      *int   `json:"page"`
		Limit     *int   `json:"limit"`
		Completed *bool  `json:"completed"`
		Order     string `json:"order"`
	})

	page := 1
	limit := 10
	if reqData != nil && reqData.Page != nil && *reqData.Page > 0 {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil && *reqData.Limit > 0 {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&roadmapModels.Enrollment{}).Where("roadmap_id = ?", roadmapID)
	if reqData != nil && reqData.Completed != nil {
		db = db.Where("is_completed = ?", *reqData.Completed)
	}

	var total int64
	db.Count(&total)

	var enrollments []roadmapModels.Enrollment
	if err := db.Offset(offset).Limit(limit).Order("enrolled_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type EnrollmentWithUser struct {
		roadmapModels.Enrollment
		UserName  string `json:"user_name"`
		UserEmail string `json:"user_email"`
	}

	// Fetch user details for each enrollment
	result := make([]EnrollmentWithUser, len(enrollments))
	for i, e := range enrollments {
		var enrolledUser models.User
		database.Database.Db.Where("id = ?", e.UserID).First(&enrolledUser)
		result[i] = EnrollmentWithUser{
			Enrollment: e,
			UserName:   enrolledUser.Name,
			UserEmail:  enrolledUser.Email,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
