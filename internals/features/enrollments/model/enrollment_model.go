package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EnrollmentModel struct {
	EnrollmentID       uuid.UUID `gorm:"column:enrollment_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"enrollment_id"`
	EnrollmentUserID   uuid.UUID `gorm:"column:enrollment_user_id;type:uuid;not null;uniqueIndex:uq_enrollment_user_course" json:"enrollment_user_id"`
	EnrollmentCourseID uuid.UUID `gorm:"column:enrollment_course_id;type:uuid;not null;uniqueIndex:uq_enrollment_user_course" json:"enrollment_course_id"`

	// 0–100, dibulatkan; ditulis ulang oleh finalizer & job rekonsiliasi
	EnrollmentProgressPercent int  `gorm:"column:enrollment_progress_percent;not null;default:0" json:"enrollment_progress_percent"`
	EnrollmentCompleted       bool `gorm:"column:enrollment_completed;not null;default:false" json:"enrollment_completed"`

	EnrollmentCreatedAt   time.Time  `gorm:"column:enrollment_created_at;not null;autoCreateTime" json:"enrollment_created_at"`
	EnrollmentCompletedAt *time.Time `gorm:"column:enrollment_completed_at" json:"enrollment_completed_at,omitempty"`
}

func (EnrollmentModel) TableName() string {
	return "enrollments"
}

func (m *EnrollmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.EnrollmentID == uuid.Nil {
		m.EnrollmentID = uuid.New()
	}
	return nil
}
