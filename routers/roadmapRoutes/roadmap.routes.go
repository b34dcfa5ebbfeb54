package roadmapRoutes

import (
	controllers "lms/controllers/roadmap"
	"lms/middleware"
	validators "lms/validators/roadmap"

	"github.com/gofiber/fiber/v2"
)

// SetupRoadmapRoutes sets up all user-facing roadmap routes
func SetupRoadmapRoutes(app *fiber.App) {
	roadmapGroup := app.Group("/roadmap")

	// Roadmap listing and details (published roadmaps)
	roadmapGroup.Get("/list", middleware.JWTMiddleware, validators.RoadmapList(), controllers.GetAllRoadmaps)
	roadmapGroup.Get("/:id", middleware.JWTMiddleware, validators.RoadmapID(), controllers.GetRoadmapDetails)

	// Enrollment lifecycle
	roadmapGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.RoadmapID(), controllers.EnrollInRoadmap)
	roadmapGroup.Delete("/:id/enroll", middleware.JWTMiddleware, validators.RoadmapID(), controllers.UnenrollFromRoadmap)
	roadmapGroup.Get("/:id/enrollment", middleware.JWTMiddleware, validators.RoadmapID(), controllers.GetEnrollmentDetails)
	roadmapGroup.Get("/:id/enrolled", middleware.JWTMiddleware, validators.RoadmapID(), controllers.IsUserEnrolled)

	// Lesson progress; every write recalculates the enrollment aggregates
	roadmapGroup.Post("/lesson/:lesson_id/progress", middleware.JWTMiddleware, validators.LessonID(), validators.LessonProgressBody(), controllers.RecordLessonProgress)
	roadmapGroup.Post("/:id/progress/recalculate", middleware.JWTMiddleware, validators.RoadmapID(), controllers.RecalculateProgress)
	roadmapGroup.Put("/:id/progress", middleware.JWTMiddleware, validators.RoadmapID(), validators.ManualProgressBody(), controllers.UpdateProgressManually)
	roadmapGroup.Delete("/:id/progress", middleware.JWTMiddleware, validators.RoadmapID(), controllers.ResetProgress)

	// Completion rate
	roadmapGroup.Get("/:id/completion-rate", middleware.JWTMiddleware, validators.RoadmapID(), controllers.GetRoadmapCompletionRate)

	// Certificates
	roadmapGroup.Post("/:id/certificate", middleware.JWTMiddleware, validators.RoadmapID(), controllers.RequestCertificate)

	// User aggregates
	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, validators.EnrollmentStatus(), controllers.GetUserEnrollments)
	userGroup.Get("/streak", middleware.JWTMiddleware, controllers.GetUserLearningStreak)
	userGroup.Get("/stats", middleware.JWTMiddleware, controllers.GetUserStats)
	userGroup.Get("/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)
}
