package courseValidator

import (
	"edu/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ModuleRequest creates a module. A nil Order appends the module after its siblings.
type ModuleRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=200"`
	Description string `json:"description"`
	Order       *int   `json:"order" validate:"omitempty,gte=0"`
}

// ModuleUpdateRequest changes only the fields that are present. Order moves the
// module explicitly; it is never recomputed.
type ModuleUpdateRequest struct {
	Title       string  `json:"title" validate:"omitempty,min=3,max=200"`
	Description *string `json:"description"`
	Order       *int    `json:"order" validate:"omitempty,gte=0"`
}

// CreateModule validates module creation request
func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, msg := parseID(c, "id", "Course ID")
		if msg != "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, msg, nil)
		}

		reqData := new(ModuleRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)

		if errors := validateStruct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// UpdateModule validates module update request
func UpdateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, msg := parseID(c, "course_id", "Course ID")
		if msg != "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, msg, nil)
		}
		moduleID, msg := parseID(c, "module_id", "Module ID")
		if msg != "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, msg, nil)
		}

		reqData := new(ModuleUpdateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.Title = strings.TrimSpace(reqData.Title)

		if errors := validateStruct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("moduleID", moduleID)
		c.Locals("validatedModuleUpdate", reqData)
		return c.Next()
	}
}

// CourseModuleIDs validates the :course_id and :module_id route parameters
func CourseModuleIDs() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, msg := parseID(c, "course_id", "Course ID")
		if msg != "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, msg, nil)
		}
		moduleID, msg := parseID(c, "module_id", "Module ID")
		if msg != "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, msg, nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("moduleID", moduleID)
		return c.Next()
	}
}

// ModuleID validates the :module_id route parameter
func ModuleID() fiber.Handler {
	return idParam("module_id", "Module ID", "moduleID")
}
