package controllers

import (
	"edu/database"
	"edu/logger"
	"edu/middleware"
	courseModels "edu/models/course"
	courseValidator "edu/validators/course"
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// dbFor returns the database session bound to the request context
func dbFor(c *fiber.Ctx) *gorm.DB {
	return database.Database.Db.WithContext(c.UserContext())
}

// ManageCourseList lists the courses owned by the caller, newest first
func ManageCourseList(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	owned := func() *gorm.DB {
		return dbFor(c).Model(&courseModels.Course{}).Scopes(courseModels.OwnedBy(userID))
	}

	var total int64
	if err := owned().Count(&total).Error; err != nil {
		logger.Log.Error("count courses failed", "user_id", userID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	var courses []courseModels.Course
	if err := owned().Scopes(courseModels.Newest).Preload("Subject").
		Offset((page - 1) * limit).Limit(limit).
		Find(&courses).Error; err != nil {
		logger.Log.Error("list courses failed", "user_id", userID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

// CreateCourse creates a course owned by the caller
func CreateCourse(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := dbFor(c)
	exists, err := subjectExists(db, reqData.SubjectID)
	if err != nil {
		logger.Log.Error("subject lookup failed", "subject_id", reqData.SubjectID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}
	if !exists {
		return middleware.ValidationErrorResponse(c, map[string]string{"subject_id": "Subject not found!"})
	}
	taken, err := slugTaken(db, reqData.Slug, 0)
	if err != nil {
		logger.Log.Error("slug lookup failed", "slug", reqData.Slug, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}
	if taken {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A course with this slug already exists!", nil)
	}

	crs := courseModels.Course{
		OwnerID:   userID,
		SubjectID: reqData.SubjectID,
		Title:     reqData.Title,
		Slug:      reqData.Slug,
		Overview:  reqData.Overview,
	}
	if err := db.Create(&crs).Error; err != nil {
		logger.Log.Error("create course failed", "user_id", userID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", crs)
}

// UpdateCourse updates a course owned by the caller
func UpdateCourse(c *fiber.Ctx) error {
	crs, ok := c.Locals("course").(*courseModels.Course)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	reqData, ok := c.Locals("validatedCourseUpdate").(*courseValidator.CourseUpdateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := dbFor(c)
	if reqData.SubjectID != 0 && reqData.SubjectID != crs.SubjectID {
		exists, err := subjectExists(db, reqData.SubjectID)
		if err != nil {
			logger.Log.Error("subject lookup failed", "subject_id", reqData.SubjectID, "error", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
		}
		if !exists {
			return middleware.ValidationErrorResponse(c, map[string]string{"subject_id": "Subject not found!"})
		}
		crs.SubjectID = reqData.SubjectID
	}
	if reqData.Slug != "" && reqData.Slug != crs.Slug {
		taken, err := slugTaken(db, reqData.Slug, crs.ID)
		if err != nil {
			logger.Log.Error("slug lookup failed", "slug", reqData.Slug, "error", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
		}
		if taken {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "A course with this slug already exists!", nil)
		}
		crs.Slug = reqData.Slug
	}
	if reqData.Title != "" {
		crs.Title = reqData.Title
	}
	if reqData.Overview != "" {
		crs.Overview = reqData.Overview
	}

	if err := db.Omit("Subject", "Owner").Save(crs).Error; err != nil {
		logger.Log.Error("update course failed", "course_id", crs.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", crs)
}

// DeleteCourse deletes a course owned by the caller with its modules, contents and items
func DeleteCourse(c *fiber.Ctx) error {
	crs, ok := c.Locals("course").(*courseModels.Course)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	err := dbFor(c).Transaction(func(tx *gorm.DB) error {
		var moduleIDs []uint
		if err := tx.Model(&courseModels.Module{}).Where("course_id = ?", crs.ID).Pluck("id", &moduleIDs).Error; err != nil {
			return err
		}
		if err := deleteModuleContents(tx, moduleIDs); err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", crs.ID).Delete(&courseModels.Module{}).Error; err != nil {
			return err
		}
		if err := tx.Model(crs).Association("Students").Clear(); err != nil {
			return err
		}
		return tx.Delete(crs).Error
	})
	if err != nil {
		logger.Log.Error("delete course failed", "course_id", crs.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// subjectExists reports whether the subject exists
func subjectExists(db *gorm.DB, subjectID uint) (bool, error) {
	var subject courseModels.Subject
	err := db.First(&subject, subjectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

// slugTaken reports whether a course other than exceptID uses slug
func slugTaken(db *gorm.DB, slug string, exceptID uint) (bool, error) {
	var count int64
	err := db.Model(&courseModels.Course{}).Where("slug = ? AND id <> ?", slug, exceptID).Count(&count).Error
	return count > 0, err
}
