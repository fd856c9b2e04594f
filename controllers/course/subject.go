package controllers

import (
	"edu/logger"
	"edu/middleware"
	courseModels "edu/models/course"
	courseValidator "edu/validators/course"

	"github.com/gofiber/fiber/v2"
)

// ListSubjects lists every subject by title
func ListSubjects(c *fiber.Ctx) error {
	var subjects []courseModels.Subject
	if err := dbFor(c).Order("title asc").Find(&subjects).Error; err != nil {
		logger.Log.Error("list subjects failed", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch subjects!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subjects fetched successfully!", fiber.Map{
		"subjects": subjects,
	})
}

// CreateSubject creates a subject
func CreateSubject(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSubject").(*courseValidator.SubjectRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := dbFor(c)
	var count int64
	if err := db.Model(&courseModels.Subject{}).Where("slug = ?", reqData.Slug).Count(&count).Error; err != nil {
		logger.Log.Error("subject slug lookup failed", "slug", reqData.Slug, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create subject!", nil)
	}
	if count > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A subject with this slug already exists!", nil)
	}

	subject := courseModels.Subject{Title: reqData.Title, Slug: reqData.Slug}
	if err := db.Create(&subject).Error; err != nil {
		logger.Log.Error("create subject failed", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create subject!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Subject created successfully!", subject)
}
