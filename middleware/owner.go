package middleware

import (
	"edu/database"
	"edu/logger"
	"edu/models/course"
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LoadOwnedCourse loads the course named by Locals("courseID") into
// Locals("course"). Courses of other owners are reported as not found.
func LoadOwnedCourse(c *fiber.Ctx) error {
	userID, ok := CurrentUserID(c)
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID, ok := c.Locals("courseID").(int)
	if !ok {
		return JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
	}

	var crs course.Course
	err := database.Database.Db.Scopes(course.OwnedBy(userID)).
		Where("courses.id = ?", courseID).
		First(&crs).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		logger.Log.Error("course lookup failed", "course_id", courseID, "error", err)
		return JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	c.Locals("course", &crs)
	return c.Next()
}

// LoadOwnedModule loads the module named by Locals("moduleID") into
// Locals("module") when it belongs to a course the caller owns. If
// Locals("courseID") is set the module must also belong to that course.
func LoadOwnedModule(c *fiber.Ctx) error {
	userID, ok := CurrentUserID(c)
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	moduleID, ok := c.Locals("moduleID").(int)
	if !ok {
		return JsonResponse(c, fiber.StatusBadRequest, false, "Module ID is required!", nil)
	}

	q := database.Database.Db.Scopes(course.ModulesOwnedBy(userID)).Where("modules.id = ?", moduleID)
	if courseID, ok := c.Locals("courseID").(int); ok {
		q = q.Where("modules.course_id = ?", courseID)
	}

	var module course.Module
	if err := q.First(&module).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
		}
		logger.Log.Error("module lookup failed", "module_id", moduleID, "error", err)
		return JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch module!", nil)
	}

	c.Locals("module", &module)
	return c.Next()
}
