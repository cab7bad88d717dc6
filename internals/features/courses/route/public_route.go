// file: internals/features/courses/route/public_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "kursusku_backend/internals/features/courses/controller"
)

// CoursePublicRoutes: katalog read-only, tanpa auth
func CoursePublicRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewCourseController(db)

	courses := api.Group("/courses")
	courses.Get("/", ctl.GetAll)
	courses.Get("/:course_id", ctl.GetByID)
}
