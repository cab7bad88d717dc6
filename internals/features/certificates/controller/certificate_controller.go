// file: internals/features/certificates/controller/certificate_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	model "kursusku_backend/internals/features/certificates/model"
	helper "kursusku_backend/internals/helpers"
)

type CertificateController struct {
	DB *gorm.DB
}

func NewCertificateController(db *gorm.DB) *CertificateController {
	return &CertificateController{DB: db}
}

/* =======================================================
   GET /api/u/certificates
   Semua sertifikat milik user login
======================================================= */

func (ctl *CertificateController) GetMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var certs []model.CertificateModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("certificate_user_id = ?", userID).
		Order("certificate_issued_at DESC").
		Find(&certs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "gagal mengambil sertifikat")
	}
	return helper.JsonOK(c, "ok", certs)
}

/* =======================================================
   GET /api/public/certificates/verify/:number
   Verifikasi publik berdasarkan nomor sertifikat
======================================================= */

func (ctl *CertificateController) VerifyByNumber(c *fiber.Ctx) error {
	number := strings.TrimSpace(c.Params("number"))
	if number == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "nomor sertifikat kosong")
	}

	var cert model.CertificateModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&cert, "certificate_number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "sertifikat tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "gagal verifikasi sertifikat")
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"certificate_number":    cert.CertificateNumber,
		"certificate_verified":  cert.CertificateVerified,
		"certificate_issued_at": cert.CertificateIssuedAt,
		"certificate_course_id": cert.CertificateCourseID,
	})
}
