package roadmapRoutes

import (
	controllers "lms/controllers/roadmap"
	"lms/middleware"
	validators "lms/validators/roadmap"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoadmapRoutes sets up admin-only catalog and enrollment routes
func SetupAdminRoadmapRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))

	// Catalog management
	adminGroup.Post("/category", validators.CategoryBody(), controllers.CreateCategory)
	adminGroup.Post("/roadmap", validators.RoadmapBody(), controllers.CreateRoadmap)
	adminGroup.Put("/roadmap/:id/publish", validators.RoadmapID(), controllers.PublishRoadmap)
	adminGroup.Post("/roadmap/:id/lesson", validators.RoadmapID(), validators.LessonBody(), controllers.CreateLesson)
	adminGroup.Put("/lesson/:lesson_id/active", validators.LessonID(), validators.LessonActiveBody(), controllers.SetLessonActive)

	// Enrollment management
	adminGroup.Post("/roadmap/:id/bulk-enroll", validators.RoadmapID(), validators.BulkEnrollBody(), controllers.BulkEnrollUsers)
	adminGroup.Get("/roadmap/:id/enrollments", validators.RoadmapID(), validators.EnrollmentQuery(), controllers.AdminGetRoadmapEnrollments)
}
