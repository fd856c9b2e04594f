package courseValidator

import (
	"edu/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ============ Subject Validators ============

type SubjectRequest struct {
	Title string `json:"title" validate:"required,min=2,max=200"`
	Slug  string `json:"slug" validate:"required,slug,max=200"`
}

// CreateSubject validates subject creation request
func CreateSubject() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SubjectRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Slug = strings.TrimSpace(reqData.Slug)

		if errors := validateStruct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSubject", reqData)
		return c.Next()
	}
}

// ============ Course Validators ============

type CourseRequest struct {
	SubjectID uint   `json:"subject_id" validate:"required"`
	Title     string `json:"title" validate:"required,min=3,max=200"`
	Slug      string `json:"slug" validate:"required,slug,max=200"`
	Overview  string `json:"overview" validate:"required,min=5"`
}

// CourseUpdateRequest only changes the fields that are present
type CourseUpdateRequest struct {
	SubjectID uint   `json:"subject_id"`
	Title     string `json:"title" validate:"omitempty,min=3,max=200"`
	Slug      string `json:"slug" validate:"omitempty,slug,max=200"`
	Overview  string `json:"overview" validate:"omitempty,min=5"`
}

// CreateCourse validates course creation request
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Slug = strings.TrimSpace(reqData.Slug)
		reqData.Overview = strings.TrimSpace(reqData.Overview)

		if errors := validateStruct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validates course update request
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, msg := parseID(c, "id", "Course ID")
		if msg != "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, msg, nil)
		}

		reqData := new(CourseUpdateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Slug = strings.TrimSpace(reqData.Slug)
		reqData.Overview = strings.TrimSpace(reqData.Overview)

		if errors := validateStruct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// CourseID validates the :id route parameter
func CourseID() fiber.Handler {
	return idParam("id", "Course ID", "courseID")
}
