package roadmapValidator

import (
	"errors"
	"fmt"
	"strings"

	"lms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// validationErrors flattens validator.ValidationErrors into the field->message
// map the response envelope expects
func validationErrors(err error) map[string]string {
	errs := make(map[string]string)

	var invalid validator.ValidationErrors
	if errors.As(err, &invalid) {
		for _, fe := range invalid {
			errs[strings.ToLower(fe.Field())] = fmt.Sprintf("Failed on the '%s' rule!", fe.Tag())
		}
		return errs
	}

	errs["body"] = "Invalid request body!"
	return errs
}

// LessonProgressBody validates a lesson progress submission
func LessonProgressBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Score       *float64 `json:"score" validate:"omitempty,gte=0,lte=100"`
			IsCompleted bool     `json:"is_completed"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedLessonProgress", reqData)
		return c.Next()
	}
}

// ManualProgressBody validates a manual progress override
func ManualProgressBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Progress     float64  `json:"progress" validate:"gte=0,lte=100"`
			AverageScore *float64 `json:"average_score" validate:"omitempty,gte=0,lte=100"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedManualProgress", reqData)
		return c.Next()
	}
}

// BulkEnrollBody validates a bulk enrollment request
func BulkEnrollBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserIDs []uint `json:"user_ids" validate:"required,min=1,dive,gt=0"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedBulkEnroll", reqData)
		return c.Next()
	}
}

// CategoryBody validates category creation
func CategoryBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name        string `json:"name" validate:"required,min=2"`
			Description string `json:"description"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedCategory", reqData)
		return c.Next()
	}
}

// RoadmapBody validates roadmap creation
func RoadmapBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title" validate:"required,min=3"`
			Description string `json:"description"`
			CategoryID  uint   `json:"category_id" validate:"required,gt=0"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedRoadmap", reqData)
		return c.Next()
	}
}

// LessonBody validates lesson creation
func LessonBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title" validate:"required,min=3"`
			Description string `json:"description"`
			ContentURL  string `json:"content_url"`
			OrderIndex  int    `json:"order_index" validate:"gte=0"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// LessonActiveBody validates a lesson activation toggle
func LessonActiveBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			IsActive bool `json:"is_active"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedLessonActive", reqData)
		return c.Next()
	}
}

// RoadmapList validates pagination for the roadmap listing
func RoadmapList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errs := make(map[string]string)
		if reqData.Page != nil && *reqData.Page < 1 {
			errs["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit != nil && (*reqData.Limit < 1 || *reqData.Limit > 100) {
			errs["limit"] = "Limit must be between 1 and 100!"
		}
		if len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}

		c.Locals("validatedRoadmapList", reqData)
		return c.Next()
	}
}

// EnrollmentQuery validates pagination and filters for the admin enrollment
// listing
func EnrollmentQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page      *int   `json:"page"`
			Limit     *int   `json:"limit"`
			Completed *bool  `json:"completed"`
			Order     string `json:"order"`
		})
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errs := make(map[string]string)
		if reqData.Page != nil && *reqData.Page < 1 {
			errs["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit != nil && (*reqData.Limit < 1 || *reqData.Limit > 100) {
			errs["limit"] = "Limit must be between 1 and 100!"
		}
		if len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}

		c.Locals("validatedEnrollmentQuery", reqData)
		return c.Next()
	}
}
