package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CertificateModel: maksimal SATU sertifikat per (user, course).
// Unique index ini adalah sumber kebenaran idempotensi penerbitan —
// pre-check di finalizer hanya jalur cepat, bukan penjaga satu-satunya.
type CertificateModel struct {
	CertificateID           uuid.UUID `gorm:"column:certificate_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"certificate_id"`
	CertificateUserID       uuid.UUID `gorm:"column:certificate_user_id;type:uuid;not null;uniqueIndex:uq_certificate_user_course" json:"certificate_user_id"`
	CertificateCourseID     uuid.UUID `gorm:"column:certificate_course_id;type:uuid;not null;uniqueIndex:uq_certificate_user_course" json:"certificate_course_id"`
	CertificateEnrollmentID uuid.UUID `gorm:"column:certificate_enrollment_id;type:uuid;not null" json:"certificate_enrollment_id"`

	CertificateNumber   string `gorm:"column:certificate_number;type:varchar(64);not null;unique" json:"certificate_number"`
	CertificateVerified bool   `gorm:"column:certificate_verified;not null;default:true" json:"certificate_verified"`

	CertificateIssuedAt time.Time `gorm:"column:certificate_issued_at;not null;default:current_timestamp" json:"certificate_issued_at"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (CertificateModel) TableName() string {
	return "certificates"
}

func (m *CertificateModel) BeforeCreate(tx *gorm.DB) error {
	if m.CertificateID == uuid.Nil {
		m.CertificateID = uuid.New()
	}
	return nil
}
