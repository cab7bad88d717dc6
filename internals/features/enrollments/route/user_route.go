// file: internals/features/enrollments/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "kursusku_backend/internals/features/enrollments/controller"
)

// EnrollmentUserRoutes: butuh login
func EnrollmentUserRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewEnrollmentController(db)

	enrollments := api.Group("/enrollments")
	enrollments.Post("/", ctl.Enroll)
	enrollments.Get("/", ctl.GetMine)
}
