// file: internals/features/learning/service/finalizer.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	certModel "kursusku_backend/internals/features/certificates/model"
	enrollModel "kursusku_backend/internals/features/enrollments/model"
	helper "kursusku_backend/internals/helpers"
)

/* =========================================================
   COMPLETION FINALIZER
   Selalu: persist persen + flag completed ke enrollment
   (level-triggered, fungsi murni dari state — aman dihitung
   berkali-kali).
   Sertifikat: edge-triggered & idempoten — pre-check, insert,
   lalu toleransi unique violation sebagai "sudah bersertifikat".
   Unique index (user, course) di DB adalah sumber kebenaran;
   pre-check saja racy tanpa backstop ini.
========================================================= */

type FinalizeOutcome struct {
	ProgressPercent   int                          `json:"progress_percent"`
	Completed         bool                         `json:"completed"`
	CertificateIssued bool                         `json:"certificate_issued"` // baru terbit pada panggilan ini
	AlreadyCertified  bool                         `json:"already_certified"`
	Certificate       *certModel.CertificateModel  `json:"certificate,omitempty"`
}

type CompletionFinalizer struct {
	DB *gorm.DB

	Now func() time.Time
}

func NewCompletionFinalizer(db *gorm.DB) *CompletionFinalizer {
	return &CompletionFinalizer{DB: db, Now: time.Now}
}

// Finalize menerima snapshot aggregator terbaru. Update enrollment
// dilakukan dulu dan TIDAK di-rollback kalau penerbitan sertifikat
// gagal — kegagalan issuance tidak boleh menghapus progress.
func (f *CompletionFinalizer) Finalize(
	ctx context.Context,
	enrollment *enrollModel.EnrollmentModel,
	snap ProgressSnapshot,
) (*FinalizeOutcome, error) {
	outcome := &FinalizeOutcome{
		ProgressPercent: snap.Percent,
		Completed:       snap.AllModulesCompleted,
	}

	updates := map[string]interface{}{
		"enrollment_progress_percent": snap.Percent,
		"enrollment_completed":        snap.AllModulesCompleted,
	}
	if snap.AllModulesCompleted && enrollment.EnrollmentCompletedAt == nil {
		now := f.Now()
		updates["enrollment_completed_at"] = now
		enrollment.EnrollmentCompletedAt = &now
	}
	if err := f.DB.WithContext(ctx).
		Model(&enrollModel.EnrollmentModel{}).
		Where("enrollment_id = ?", enrollment.EnrollmentID).
		Updates(updates).Error; err != nil {
		return nil, err
	}
	enrollment.EnrollmentProgressPercent = snap.Percent
	enrollment.EnrollmentCompleted = snap.AllModulesCompleted

	// course tanpa slide tidak pernah menerbitkan sertifikat
	if !snap.AllModulesCompleted || snap.TotalSlides == 0 {
		return outcome, nil
	}

	cert, issued, err := f.issueCertificate(ctx, enrollment)
	if err != nil {
		// recoverable: progress sudah durable, hanya sertifikat yang gagal
		return outcome, err
	}
	outcome.Certificate = cert
	outcome.CertificateIssued = issued
	outcome.AlreadyCertified = !issued
	return outcome, nil
}

// issueCertificate: pre-check → insert → toleransi 23505.
func (f *CompletionFinalizer) issueCertificate(
	ctx context.Context,
	enrollment *enrollModel.EnrollmentModel,
) (*certModel.CertificateModel, bool, error) {
	var existing certModel.CertificateModel
	err := f.DB.WithContext(ctx).
		First(&existing,
			"certificate_user_id = ? AND certificate_course_id = ?",
			enrollment.EnrollmentUserID, enrollment.EnrollmentCourseID).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	now := f.Now()
	cert := certModel.CertificateModel{
		CertificateUserID:       enrollment.EnrollmentUserID,
		CertificateCourseID:     enrollment.EnrollmentCourseID,
		CertificateEnrollmentID: enrollment.EnrollmentID,
		CertificateNumber:       generateCertificateNumber(now, enrollment.EnrollmentUserID.String()),
		CertificateVerified:     true,
		CertificateIssuedAt:     now,
	}
	if err := f.DB.WithContext(ctx).Create(&cert).Error; err != nil {
		if helper.IsDuplicateKey(err) {
			// race: jalur completion lain sudah insert duluan — bukan error
			log.Printf("[FINALIZER] sertifikat sudah ada (race), enrollment=%s", enrollment.EnrollmentID)
			var winner certModel.CertificateModel
			if err := f.DB.WithContext(ctx).
				First(&winner,
					"certificate_user_id = ? AND certificate_course_id = ?",
					enrollment.EnrollmentUserID, enrollment.EnrollmentCourseID).Error; err != nil {
				return nil, false, err
			}
			return &winner, false, nil
		}
		return nil, false, err
	}
	return &cert, true, nil
}

// generateCertificateNumber: waktu terbit + prefix user id → unik global
// (kolom unique di DB tetap jadi penjaga terakhir).
func generateCertificateNumber(t time.Time, userID string) string {
	prefix := strings.ToUpper(strings.ReplaceAll(userID, "-", ""))
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return fmt.Sprintf("KSK-%d-%s", t.UnixNano(), prefix)
}
