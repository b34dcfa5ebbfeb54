package controllers

import (
	"lms/database"
	"lms/middleware"
	roadmapModels "lms/models/roadmap"

	"github.com/gofiber/fiber/v2"
)

// GetAllRoadmaps lists published roadmaps with pagination
func GetAllRoadmaps(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, _ := c.Locals("validatedRoadmapList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	page := 1
	limit := 10
	if reqData != nil && reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&roadmapModels.Roadmap{}).
		Where("is_deleted = ? AND is_published = ? AND status = ?", false, true, "ACTIVE")

	if categoryID := c.QueryInt("category_id"); categoryID > 0 {
		db = db.Where("category_id = ?", categoryID)
	}

	var total int64
	db.Count(&total)

	var roadmaps []roadmapModels.Roadmap
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&roadmaps).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch roadmaps!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Roadmaps fetched successfully!", fiber.Map{
		"roadmaps": roadmaps,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetRoadmapDetails returns a roadmap with its lessons and the caller's
// enrollment state
func GetRoadmapDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	roadmapID := c.Locals("roadmapID").(uint)

	var rm roadmapModels.Roadmap
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?",
		roadmapID, false, true).First(&rm).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Roadmap not found!", nil)
	}

	var lessons []roadmapModels.Lesson
	database.Database.Db.Where("roadmap_id = ? AND is_active = ? AND is_deleted = ?", roadmapID, true, false).
		Order("order_index asc").Find(&lessons)

	// Check if user is enrolled
	var enr roadmapModels.Enrollment
	isEnrolled := database.Database.Db.Where("user_id = ? AND roadmap_id = ?", userID, roadmapID).
		First(&enr).Error == nil

	response := fiber.Map{
		"roadmap":     rm,
		"lessons":     lessons,
		"is_enrolled": isEnrolled,
	}
	if isEnrolled {
		response["enrollment"] = enr
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Roadmap details fetched successfully!", response)
}
