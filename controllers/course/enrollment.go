package controllers

import (
	"edu/logger"
	"edu/middleware"
	"edu/models"
	courseModels "edu/models/course"
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// EnrollInCourse adds the caller to the course's students
func EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(int)

	db := dbFor(c)

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var crs courseModels.Course
	if err := db.First(&crs, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		logger.Log.Error("course lookup failed", "course_id", courseID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	var enrolled int64
	if err := db.Table("course_students").Where("course_id = ? AND user_id = ?", crs.ID, userID).Count(&enrolled).Error; err != nil {
		logger.Log.Error("enrollment lookup failed", "course_id", crs.ID, "user_id", userID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}
	if enrolled > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already enrolled in this course!", nil)
	}

	if err := db.Model(&crs).Association("Students").Append(&user); err != nil {
		logger.Log.Error("enroll failed", "course_id", crs.ID, "user_id", userID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", crs)
}

// ListJoinedCourses lists the courses the caller is enrolled in
func ListJoinedCourses(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var courses []courseModels.Course
	if err := dbFor(c).
		Joins("JOIN course_students ON course_students.course_id = courses.id").
		Where("course_students.user_id = ?", userID).
		Scopes(courseModels.Newest).
		Find(&courses).Error; err != nil {
		logger.Log.Error("list joined courses failed", "user_id", userID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}
