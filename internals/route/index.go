// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	certRoute "kursusku_backend/internals/features/certificates/route"
	courseRoute "kursusku_backend/internals/features/courses/route"
	enrollRoute "kursusku_backend/internals/features/enrollments/route"
	learningRoute "kursusku_backend/internals/features/learning/route"
	authMw "kursusku_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")
	courseRoute.CoursePublicRoutes(public, db)
	certRoute.CertificatePublicRoutes(public, db)

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api/u", authMw.AuthMiddleware())
	enrollRoute.EnrollmentUserRoutes(user, db)
	learningRoute.LearningUserRoutes(user, db)
	certRoute.CertificateUserRoutes(user, db)
}
