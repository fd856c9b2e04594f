package controllers

import (
	"edu/logger"
	"edu/middleware"
	courseModels "edu/models/course"
	courseValidator "edu/validators/course"
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateModule adds a module to a course owned by the caller. Without an
// explicit order the module goes after the course's last module.
func CreateModule(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(int)
	reqData, ok := c.Locals("validatedModule").(*courseValidator.ModuleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	module := courseModels.Module{
		CourseID:    uint(courseID),
		Title:       reqData.Title,
		Description: reqData.Description,
		Order:       reqData.Order,
	}

	err := dbFor(c).Transaction(func(tx *gorm.DB) error {
		// Locking the course serializes order assignment among its modules
		var crs courseModels.Course
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Scopes(courseModels.OwnedBy(userID)).
			Where("courses.id = ?", courseID).
			First(&crs).Error; err != nil {
			return err
		}
		return tx.Create(&module).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		logger.Log.Error("create module failed", "course_id", courseID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	logger.Log.Debug("module created", "course_id", courseID, "module_id", module.ID, "order", *module.Order)
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", module)
}

// ModuleWithCount is a module listed with the number of contents it holds
type ModuleWithCount struct {
	courseModels.Module
	ContentCount int64 `json:"content_count"`
}

// ListModules lists the modules of a course owned by the caller in order
func ListModules(c *fiber.Ctx) error {
	crs, ok := c.Locals("course").(*courseModels.Course)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	db := dbFor(c)
	var modules []courseModels.Module
	if err := db.Where("course_id = ?", crs.ID).
		Scopes(courseModels.ByPosition("modules")).
		Find(&modules).Error; err != nil {
		logger.Log.Error("list modules failed", "course_id", crs.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	ids := make([]uint, len(modules))
	for i, m := range modules {
		ids[i] = m.ID
	}
	var counts []struct {
		ModuleID uint
		Count    int64
	}
	if len(ids) > 0 {
		if err := db.Model(&courseModels.Content{}).
			Select("module_id, COUNT(*) AS count").
			Where("module_id IN ?", ids).
			Group("module_id").
			Scan(&counts).Error; err != nil {
			logger.Log.Error("count contents failed", "course_id", crs.ID, "error", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
		}
	}
	byModule := make(map[uint]int64, len(counts))
	for _, row := range counts {
		byModule[row.ModuleID] = row.Count
	}

	modulesWithCount := make([]ModuleWithCount, len(modules))
	for i, m := range modules {
		modulesWithCount[i] = ModuleWithCount{Module: m, ContentCount: byModule[m.ID]}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules fetched successfully!", fiber.Map{
		"modules": modulesWithCount,
	})
}

// UpdateModule updates a module. The order only changes when one is supplied.
func UpdateModule(c *fiber.Ctx) error {
	module, ok := c.Locals("module").(*courseModels.Module)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}
	reqData, ok := c.Locals("validatedModuleUpdate").(*courseValidator.ModuleUpdateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		module.Title = reqData.Title
	}
	if reqData.Description != nil {
		module.Description = *reqData.Description
	}
	if reqData.Order != nil {
		module.Order = reqData.Order
	}

	if err := dbFor(c).Save(module).Error; err != nil {
		logger.Log.Error("update module failed", "module_id", module.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully!", module)
}

// DeleteModule deletes a module with its contents and their items
func DeleteModule(c *fiber.Ctx) error {
	module, ok := c.Locals("module").(*courseModels.Module)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	err := dbFor(c).Transaction(func(tx *gorm.DB) error {
		if err := deleteModuleContents(tx, []uint{module.ID}); err != nil {
			return err
		}
		return tx.Delete(module).Error
	})
	if err != nil {
		logger.Log.Error("delete module failed", "module_id", module.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully!", nil)
}

// deleteModuleContents removes every content of the given modules and the items they point at
func deleteModuleContents(tx *gorm.DB, moduleIDs []uint) error {
	if len(moduleIDs) == 0 {
		return nil
	}
	var contents []courseModels.Content
	if err := tx.Where("module_id IN ?", moduleIDs).Find(&contents).Error; err != nil {
		return err
	}
	if err := courseModels.DeleteItems(tx, contents); err != nil {
		return err
	}
	return tx.Where("module_id IN ?", moduleIDs).Delete(&courseModels.Content{}).Error
}
