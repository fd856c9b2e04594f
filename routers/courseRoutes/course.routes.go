package courseRoutes

import (
	controllers "edu/controllers/course"
	"edu/middleware"
	"edu/models"
	validators "edu/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up subject, course, module and content routes
func SetupCourseRoutes(app *fiber.App) {
	subjectGroup := app.Group("/subjects", middleware.JWTMiddleware)
	subjectGroup.Get("/", controllers.ListSubjects)
	subjectGroup.Post("/", middleware.CheckPermissionMiddleware(models.PermAddSubject), validators.CreateSubject(), controllers.CreateSubject)

	courseGroup := app.Group("/course", middleware.JWTMiddleware)

	// Course management, limited to the caller's own courses
	courseGroup.Get("/mine", controllers.ManageCourseList)
	courseGroup.Get("/joined", controllers.ListJoinedCourses)
	courseGroup.Post("/create", middleware.CheckPermissionMiddleware(models.PermAddCourse), validators.CreateCourse(), controllers.CreateCourse)
	courseGroup.Put("/:id", middleware.CheckPermissionMiddleware(models.PermChangeCourse), validators.UpdateCourse(), middleware.LoadOwnedCourse, controllers.UpdateCourse)
	courseGroup.Delete("/:id", middleware.CheckPermissionMiddleware(models.PermDeleteCourse), validators.CourseID(), middleware.LoadOwnedCourse, controllers.DeleteCourse)

	// Enrollment
	courseGroup.Post("/:id/enroll", validators.CourseID(), controllers.EnrollInCourse)

	// Modules
	courseGroup.Post("/:id/module", validators.CreateModule(), controllers.CreateModule)
	courseGroup.Get("/:id/modules", validators.CourseID(), middleware.LoadOwnedCourse, controllers.ListModules)
	courseGroup.Put("/:course_id/module/:module_id", validators.UpdateModule(), middleware.LoadOwnedModule, controllers.UpdateModule)
	courseGroup.Delete("/:course_id/module/:module_id", validators.CourseModuleIDs(), middleware.LoadOwnedModule, controllers.DeleteModule)

	// Contents
	moduleGroup := app.Group("/module", middleware.JWTMiddleware)
	moduleGroup.Post("/:module_id/content/:kind", validators.CreateContent(), controllers.CreateContent)
	moduleGroup.Get("/:module_id/contents", validators.ModuleID(), middleware.LoadOwnedModule, controllers.ListContents)
	moduleGroup.Delete("/:module_id/content/:content_id", validators.ModuleContentIDs(), middleware.LoadOwnedModule, controllers.DeleteContent)
}
