package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseModel struct {
	CourseID          uuid.UUID `gorm:"column:course_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	CourseTitle       string    `gorm:"column:course_title;type:varchar(180);not null" json:"course_title"`
	CourseDescription *string   `gorm:"column:course_description;type:text" json:"course_description,omitempty"`
	CourseImageURL    *string   `gorm:"column:course_image_url;type:text" json:"course_image_url,omitempty"`
	CourseIsPublished bool      `gorm:"column:course_is_published;not null;default:false" json:"course_is_published"`

	CourseCreatedAt time.Time      `gorm:"column:course_created_at;not null;autoCreateTime" json:"course_created_at"`
	CourseUpdatedAt time.Time      `gorm:"column:course_updated_at;not null;autoUpdateTime" json:"course_updated_at"`
	CourseDeletedAt gorm.DeletedAt `gorm:"column:course_deleted_at;index" json:"course_deleted_at,omitempty"`
}

func (CourseModel) TableName() string {
	return "courses"
}
