// file: internals/features/courses/controller/course_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "kursusku_backend/internals/features/courses/dto"
	model "kursusku_backend/internals/features/courses/model"
	svc "kursusku_backend/internals/features/courses/service"
	helper "kursusku_backend/internals/helpers"
)

/* =======================================================
   Controller struct
======================================================= */

type CourseController struct {
	DB      *gorm.DB
	Content *svc.ContentRepository
}

func NewCourseController(db *gorm.DB) *CourseController {
	return &CourseController{DB: db, Content: svc.NewContentRepository(db)}
}

/* =======================================================
   GET /api/public/courses
   Katalog course yang sudah publish (paginated)
======================================================= */

func (ctl *CourseController) GetAll(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "course_created_at", "desc", helper.DefaultOpts)

	base := ctl.DB.WithContext(c.Context()).
		Model(&model.CourseModel{}).
		Where("course_is_published = TRUE")

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "gagal menghitung courses")
	}

	// whitelist kolom sort
	orderCol := "course_created_at"
	if p.SortBy == "course_title" {
		orderCol = "course_title"
	}

	var courses []model.CourseModel
	if err := base.
		Order(orderCol + " " + p.SortOrder).
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&courses).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "gagal mengambil courses")
	}

	items := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		items = append(items, dto.NewCourseResponse(&courses[i]))
	}
	return helper.JsonList(c, "ok", items, helper.BuildMeta(total, p))
}

/* =======================================================
   GET /api/public/courses/:course_id
   Detail course + module + slide terurut (quiz disaring)
======================================================= */

func (ctl *CourseController) GetByID(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("course_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "course_id tidak valid")
	}

	content, err := ctl.Content.LoadCourseContent(c.Context(), courseID)
	if err != nil {
		if errors.Is(err, svc.ErrCourseNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "course tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "gagal mengambil course")
	}

	resp := dto.CourseDetailResponse{
		CourseResponse: dto.NewCourseResponse(&content.Course),
		Modules:        make([]dto.ModuleResponse, 0, len(content.Modules)),
	}
	for i := range content.Modules {
		mc := &content.Modules[i]
		mod := dto.ModuleResponse{
			CourseModuleID:    mc.Module.CourseModuleID,
			CourseModuleTitle: mc.Module.CourseModuleTitle,
			CourseModuleRank:  mc.Module.CourseModuleRank,
			Slides:            make([]dto.SlideResponse, 0, len(mc.Slides)),
		}
		for j := range mc.Slides {
			mod.Slides = append(mod.Slides, dto.NewSlideResponse(&mc.Slides[j]))
		}
		resp.Modules = append(resp.Modules, mod)
	}
	return helper.JsonOK(c, "ok", resp)
}
