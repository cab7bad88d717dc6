// file: internals/features/enrollments/controller/enrollment_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "kursusku_backend/internals/features/courses/model"
	dto "kursusku_backend/internals/features/enrollments/dto"
	model "kursusku_backend/internals/features/enrollments/model"
	helper "kursusku_backend/internals/helpers"
)

var validate = validator.New()

/* =======================================================
   Controller struct
======================================================= */

type EnrollmentController struct {
	DB *gorm.DB
}

func NewEnrollmentController(db *gorm.DB) *EnrollmentController {
	return &EnrollmentController{DB: db}
}

/* =======================================================
   POST /api/u/enrollments
   Daftar ke course. Satu enrollment per (user, course);
   duplicate insert dianggap "sudah terdaftar", bukan error.
======================================================= */

func (ctl *EnrollmentController) Enroll(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var body dto.CreateEnrollmentRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	// course harus ada & publish
	var course courseModel.CourseModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&course, "course_id = ? AND course_is_published = TRUE", body.EnrollmentCourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "course tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "gagal cek course")
	}

	enrollment := model.EnrollmentModel{
		EnrollmentUserID:   userID,
		EnrollmentCourseID: body.EnrollmentCourseID,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&enrollment).Error; err != nil {
		if helper.IsDuplicateKey(err) {
			// sudah pernah enroll → kembalikan row existing
			var existing model.EnrollmentModel
			if err := ctl.DB.WithContext(c.Context()).
				First(&existing, "enrollment_user_id = ? AND enrollment_course_id = ?", userID, body.EnrollmentCourseID).Error; err != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, "gagal mengambil enrollment")
			}
			return helper.JsonOK(c, "sudah terdaftar di course ini", existing)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "gagal membuat enrollment")
	}

	return helper.JsonCreated(c, "berhasil enroll", enrollment)
}

/* =======================================================
   GET /api/u/enrollments
   Semua enrollment milik user login
======================================================= */

func (ctl *EnrollmentController) GetMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var enrollments []model.EnrollmentModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("enrollment_user_id = ?", userID).
		Order("enrollment_created_at DESC").
		Find(&enrollments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "gagal mengambil enrollments")
	}
	return helper.JsonOK(c, "ok", enrollments)
}

/* =======================================================
   internal util (dipakai controller learning juga)
======================================================= */

// FindOwnedEnrollment memastikan enrollment (user, course) ada.
func FindOwnedEnrollment(db *gorm.DB, c *fiber.Ctx, userID, courseID uuid.UUID) (*model.EnrollmentModel, error) {
	var enrollment model.EnrollmentModel
	if err := db.WithContext(c.Context()).
		First(&enrollment, "enrollment_user_id = ? AND enrollment_course_id = ?", userID, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusForbidden, "Belum terdaftar di course ini")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "gagal mengambil enrollment")
	}
	return &enrollment, nil
}
