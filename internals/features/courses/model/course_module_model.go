package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseModuleModel struct {
	CourseModuleID       uuid.UUID `gorm:"column:course_module_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"course_module_id"`
	CourseModuleCourseID uuid.UUID `gorm:"column:course_module_course_id;type:uuid;not null;uniqueIndex:uq_course_module_rank" json:"course_module_course_id"`
	CourseModuleTitle    string    `gorm:"column:course_module_title;type:varchar(180);not null" json:"course_module_title"`

	// Rank 1-based, unik per course — urutan traversal murid
	CourseModuleRank     int  `gorm:"column:course_module_rank;not null;uniqueIndex:uq_course_module_rank" json:"course_module_rank"`
	CourseModuleIsActive bool `gorm:"column:course_module_is_active;not null;default:true" json:"course_module_is_active"`

	CourseModuleCreatedAt time.Time      `gorm:"column:course_module_created_at;not null;autoCreateTime" json:"course_module_created_at"`
	CourseModuleUpdatedAt time.Time      `gorm:"column:course_module_updated_at;not null;autoUpdateTime" json:"course_module_updated_at"`
	CourseModuleDeletedAt gorm.DeletedAt `gorm:"column:course_module_deleted_at;index" json:"course_module_deleted_at,omitempty"`
}

func (CourseModuleModel) TableName() string {
	return "course_modules"
}
