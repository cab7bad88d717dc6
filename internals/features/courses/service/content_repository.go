// file: internals/features/courses/service/content_repository.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "kursusku_backend/internals/features/courses/model"
)

var ErrCourseNotFound = errors.New("course tidak ditemukan")

/* =========================================================
   CONTENT SNAPSHOT
   Struktur course yang sudah di-load lengkap & terurut.
   Immutable selama satu learning session — engine navigasi
   bekerja di atas snapshot ini, bukan query per langkah.
========================================================= */

type ModuleContent struct {
	Module model.CourseModuleModel
	Slides []model.SlideModel // urut naik berdasarkan slide_rank
}

type CourseContent struct {
	Course  model.CourseModel
	Modules []ModuleContent // urut naik berdasarkan course_module_rank, hanya yang aktif
}

// TotalSlides menghitung semua slide pada module aktif.
func (cc *CourseContent) TotalSlides() int {
	n := 0
	for i := range cc.Modules {
		n += len(cc.Modules[i].Slides)
	}
	return n
}

// SlideAt mengembalikan slide pada posisi (moduleIdx, slideIdx), nil kalau di luar jangkauan.
func (cc *CourseContent) SlideAt(moduleIdx, slideIdx int) *model.SlideModel {
	if moduleIdx < 0 || moduleIdx >= len(cc.Modules) {
		return nil
	}
	slides := cc.Modules[moduleIdx].Slides
	if slideIdx < 0 || slideIdx >= len(slides) {
		return nil
	}
	return &slides[slideIdx]
}

// FindSlide mencari posisi slide berdasarkan id.
func (cc *CourseContent) FindSlide(slideID uuid.UUID) (moduleIdx, slideIdx int, ok bool) {
	for mi := range cc.Modules {
		for si := range cc.Modules[mi].Slides {
			if cc.Modules[mi].Slides[si].SlideID == slideID {
				return mi, si, true
			}
		}
	}
	return 0, 0, false
}

/* =========================================================
   CONTENT REPOSITORY
========================================================= */

type ContentRepository struct {
	DB *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

// LoadCourseContent memuat course + module aktif + slide, semuanya terurut rank.
func (r *ContentRepository) LoadCourseContent(ctx context.Context, courseID uuid.UUID) (*CourseContent, error) {
	var course model.CourseModel
	if err := r.DB.WithContext(ctx).
		First(&course, "course_id = ? AND course_is_published = TRUE", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	var modules []model.CourseModuleModel
	if err := r.DB.WithContext(ctx).
		Where("course_module_course_id = ? AND course_module_is_active = TRUE", courseID).
		Order("course_module_rank ASC").
		Find(&modules).Error; err != nil {
		return nil, err
	}

	content := &CourseContent{Course: course, Modules: make([]ModuleContent, 0, len(modules))}
	if len(modules) == 0 {
		return content, nil
	}

	moduleIDs := make([]uuid.UUID, 0, len(modules))
	for _, m := range modules {
		moduleIDs = append(moduleIDs, m.CourseModuleID)
	}

	var slides []model.SlideModel
	if err := r.DB.WithContext(ctx).
		Where("slide_module_id IN ?", moduleIDs).
		Order("slide_rank ASC").
		Find(&slides).Error; err != nil {
		return nil, err
	}

	byModule := make(map[uuid.UUID][]model.SlideModel, len(modules))
	for _, s := range slides {
		byModule[s.SlideModuleID] = append(byModule[s.SlideModuleID], s)
	}
	for _, m := range modules {
		content.Modules = append(content.Modules, ModuleContent{
			Module: m,
			Slides: byModule[m.CourseModuleID],
		})
	}
	return content, nil
}
