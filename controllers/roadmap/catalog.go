package controllers

import (
	"lms/database"
	"lms/middleware"
	roadmapModels "lms/models/roadmap"

	"github.com/gofiber/fiber/v2"
)

// CreateCategory creates a roadmap category
func CreateCategory(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCategory").(*struct {
		Name        string `json:"name" validate:"required,min=2"`
		Description string `json:"description"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := database.Database.Db.Where("name = ? AND is_deleted = ?", reqData.Name, false).
		First(&roadmapModels.Category{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Category already exists!", nil)
	}

	category := roadmapModels.Category{
		Name:        reqData.Name,
		Description: reqData.Description,
	}

	if err := database.Database.Db.Create(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category created successfully!", category)
}

// CreateRoadmap creates a roadmap in DRAFT status
func CreateRoadmap(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedRoadmap").(*struct {
		Title       string `json:"title" validate:"required,min=3"`
		Description string `json:"description"`
		CategoryID  uint   `json:"category_id" validate:"required,gt=0"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var category roadmapModels.Category
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.CategoryID, false).
		First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	rm := roadmapModels.Roadmap{
		Title:       reqData.Title,
		Description: reqData.Description,
		CategoryID:  reqData.CategoryID,
	}

	if err := database.Database.Db.Create(&rm).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create roadmap!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Roadmap created successfully!", rm)
}

// PublishRoadmap activates and publishes a roadmap
func PublishRoadmap(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	roadmapID := c.Locals("roadmapID").(uint)

	var rm roadmapModels.Roadmap
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", roadmapID, false).First(&rm).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Roadmap not found!", nil)
	}

	rm.Status = "ACTIVE"
	rm.IsPublished = true

	if err := database.Database.Db.Save(&rm).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish roadmap!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Roadmap published successfully!", rm)
}

// CreateLesson adds a lesson to a roadmap
func CreateLesson(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	roadmapID := c.Locals("roadmapID").(uint)

	var rm roadmapModels.Roadmap
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", roadmapID, false).First(&rm).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Roadmap not found!", nil)
	}

	reqData, ok := c.Locals("validatedLesson").(*struct {
		Title       string `json:"title" validate:"required,min=3"`
		Description string `json:"description"`
		ContentURL  string `json:"content_url"`
		OrderIndex  int    `json:"order_index" validate:"gte=0"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lesson := roadmapModels.Lesson{
		RoadmapID:   roadmapID,
		Title:       reqData.Title,
		Description: reqData.Description,
		ContentURL:  reqData.ContentURL,
		OrderIndex:  reqData.OrderIndex,
		IsActive:    true,
	}

	if err := database.Database.Db.Create(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson created successfully!", lesson)
}

// SetLessonActive toggles a lesson's active flag. Inactive lessons drop out of
// progress calculations on the next recalculation.
func SetLessonActive(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID := c.Locals("lessonID").(uint)

	reqData, ok := c.Locals("validatedLessonActive").(*struct {
		IsActive bool `json:"is_active"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var lesson roadmapModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	lesson.IsActive = reqData.IsActive

	if err := database.Database.Db.Save(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}
