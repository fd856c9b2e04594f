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

// CreateContent creates an item of the requested kind and places it in a
// module of a course owned by the caller, after the module's last content
// unless an order is given.
func CreateContent(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	moduleID := c.Locals("moduleID").(int)
	kind := c.Locals("contentKind").(courseModels.Kind)
	reqData, ok := c.Locals("validatedContent").(*courseValidator.ItemRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	item, err := newItem(kind, userID, reqData)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content kind must be text, video, image, or file!", nil)
	}
	content := courseModels.Content{
		ModuleID: uint(moduleID),
		Kind:     kind,
		Order:    reqData.Order,
	}

	err = dbFor(c).Transaction(func(tx *gorm.DB) error {
		// Locking the module serializes order assignment among its contents
		var module courseModels.Module
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "modules"}}).
			Scopes(courseModels.ModulesOwnedBy(userID)).
			Where("modules.id = ?", moduleID).
			First(&module).Error; err != nil {
			return err
		}
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		content.ItemID = item.Base().ID
		return tx.Create(&content).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
		}
		logger.Log.Error("create content failed", "module_id", moduleID, "kind", kind, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create content!", nil)
	}

	content.Item = item
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Content created successfully!", content)
}

func newItem(kind courseModels.Kind, ownerID uint, reqData *courseValidator.ItemRequest) (courseModels.Item, error) {
	item, err := courseModels.NewItem(kind)
	if err != nil {
		return nil, err
	}
	base := item.Base()
	base.OwnerID = ownerID
	base.Title = reqData.Title

	switch it := item.(type) {
	case *courseModels.Text:
		it.Body = reqData.Body
	case *courseModels.Video:
		it.URL = reqData.URL
	case *courseModels.Image:
		it.Path = reqData.File
	case *courseModels.File:
		it.Path = reqData.File
	}
	return item, nil
}

// ListContents lists a module's contents in order with their items
func ListContents(c *fiber.Ctx) error {
	module, ok := c.Locals("module").(*courseModels.Module)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	db := dbFor(c)
	var contents []courseModels.Content
	if err := db.Where("module_id = ?", module.ID).
		Scopes(courseModels.ByPosition("contents")).
		Find(&contents).Error; err != nil {
		logger.Log.Error("list contents failed", "module_id", module.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch contents!", nil)
	}
	if err := courseModels.LoadItems(db, contents); err != nil {
		logger.Log.Error("load content items failed", "module_id", module.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch contents!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Contents fetched successfully!", fiber.Map{
		"module":   module,
		"contents": contents,
	})
}

// DeleteContent removes a content from its module along with its item
func DeleteContent(c *fiber.Ctx) error {
	module, ok := c.Locals("module").(*courseModels.Module)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}
	contentID := c.Locals("contentID").(int)

	db := dbFor(c)
	var content courseModels.Content
	if err := db.Where("id = ? AND module_id = ?", contentID, module.ID).First(&content).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
		}
		logger.Log.Error("content lookup failed", "content_id", contentID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete content!", nil)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := courseModels.DeleteItems(tx, []courseModels.Content{content}); err != nil {
			return err
		}
		return tx.Delete(&content).Error
	})
	if err != nil {
		logger.Log.Error("delete content failed", "content_id", contentID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content deleted successfully!", nil)
}
