package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SlideProgressModel: satu row per (enrollment, slide) — upsert by slide id.
// Re-complete boleh memperbarui timestamp, tapi completed tidak pernah
// turun dari true ke false.
type SlideProgressModel struct {
	SlideProgressID           uuid.UUID `gorm:"column:slide_progress_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"slide_progress_id"`
	SlideProgressEnrollmentID uuid.UUID `gorm:"column:slide_progress_enrollment_id;type:uuid;not null;uniqueIndex:uq_slide_progress" json:"slide_progress_enrollment_id"`
	SlideProgressSlideID      uuid.UUID `gorm:"column:slide_progress_slide_id;type:uuid;not null;uniqueIndex:uq_slide_progress" json:"slide_progress_slide_id"`

	SlideProgressCompleted      bool       `gorm:"column:slide_progress_completed;not null;default:false" json:"slide_progress_completed"`
	SlideProgressStartedAt      time.Time  `gorm:"column:slide_progress_started_at;not null" json:"slide_progress_started_at"`
	SlideProgressFinishedAt     *time.Time `gorm:"column:slide_progress_finished_at" json:"slide_progress_finished_at,omitempty"`
	SlideProgressElapsedSeconds int        `gorm:"column:slide_progress_elapsed_seconds;not null;default:0" json:"slide_progress_elapsed_seconds"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SlideProgressModel) TableName() string {
	return "slide_progress"
}

func (m *SlideProgressModel) BeforeCreate(tx *gorm.DB) error {
	if m.SlideProgressID == uuid.Nil {
		m.SlideProgressID = uuid.New()
	}
	return nil
}
