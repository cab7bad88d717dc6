// file: internals/features/certificates/route/routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "kursusku_backend/internals/features/certificates/controller"
)

// CertificateUserRoutes: butuh login
func CertificateUserRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewCertificateController(db)
	api.Get("/certificates", ctl.GetMine)
}

// CertificatePublicRoutes: verifikasi terbuka
func CertificatePublicRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewCertificateController(db)
	api.Get("/certificates/verify/:number", ctl.VerifyByNumber)
}
