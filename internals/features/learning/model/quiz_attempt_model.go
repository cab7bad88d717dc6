package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuizAttemptModel: append-only. Setiap submit membuat row baru,
// termasuk attempt berulang pada slide yang sama. Tidak pernah
// di-update atau dihapus.
type QuizAttemptModel struct {
	QuizAttemptID           uuid.UUID `gorm:"column:quiz_attempt_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"quiz_attempt_id"`
	QuizAttemptEnrollmentID uuid.UUID `gorm:"column:quiz_attempt_enrollment_id;type:uuid;not null;index" json:"quiz_attempt_enrollment_id"`
	QuizAttemptSlideID      uuid.UUID `gorm:"column:quiz_attempt_slide_id;type:uuid;not null;index" json:"quiz_attempt_slide_id"`

	QuizAttemptSelectedOptionID string `gorm:"column:quiz_attempt_selected_option_id;type:varchar(64);not null" json:"quiz_attempt_selected_option_id"`
	QuizAttemptIsCorrect        bool   `gorm:"column:quiz_attempt_is_correct;not null" json:"quiz_attempt_is_correct"`
	QuizAttemptScore            int    `gorm:"column:quiz_attempt_score;not null" json:"quiz_attempt_score"`

	// detik sejak slide pertama kali tampil sampai submit
	QuizAttemptResponseSeconds int `gorm:"column:quiz_attempt_response_seconds;not null;default:0" json:"quiz_attempt_response_seconds"`

	QuizAttemptCreatedAt time.Time `gorm:"column:quiz_attempt_created_at;not null;autoCreateTime" json:"quiz_attempt_created_at"`
}

func (QuizAttemptModel) TableName() string {
	return "quiz_attempts"
}

func (m *QuizAttemptModel) BeforeCreate(tx *gorm.DB) error {
	if m.QuizAttemptID == uuid.Nil {
		m.QuizAttemptID = uuid.New()
	}
	return nil
}
